// Package pattern defines the report data produced from parsed logs.
// Patterns are pure data; renderers decide presentation.
package pattern

// PatternType identifies the kind of report section.
type PatternType string

const (
	PatternTypeSummary  PatternType = "summary"
	PatternTypeTestList PatternType = "test-list"
	PatternTypeDiff     PatternType = "diff"
)

// Pattern is the interface all report sections implement.
type Pattern interface {
	Type() PatternType
}
