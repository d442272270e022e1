package pattern

import "github.com/dkoosis/parsetest/pkg/testlog"

// Diff lists the tests whose outcome changed between two logs, in report
// order. An empty Changes slice means nothing changed.
type Diff struct {
	Baseline string       `json:"baseline"`
	Current  string       `json:"current"`
	Changes  []DiffChange `json:"changes"`
}

// DiffChange is one test's transition.
type DiffChange struct {
	Name   string          `json:"name"`
	Before testlog.Outcome `json:"before"`
	After  testlog.Outcome `json:"after"`
}

func (d *Diff) Type() PatternType { return PatternTypeDiff }
