// Package render provides output renderers for parsetest's report patterns.
package render

import "github.com/dkoosis/parsetest/pkg/pattern"

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}

// DiffHeader separates the per-log counts from the changed tests.
const DiffHeader = "|==================== DIFF ====================|"

var (
	_ Renderer = (*Text)(nil)
	_ Renderer = (*Terminal)(nil)
	_ Renderer = (*JSON)(nil)
)
