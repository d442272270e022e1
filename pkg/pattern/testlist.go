package pattern

import "github.com/dkoosis/parsetest/pkg/testlog"

// TestList is a list of test names sharing one outcome.
type TestList struct {
	Outcome testlog.Outcome `json:"outcome"`
	Names   []string        `json:"names"`
}

func (l *TestList) Type() PatternType { return PatternTypeTestList }
