package pattern

// Summary holds the per-outcome counts of one log.
type Summary struct {
	Source  string `json:"source"`
	Passed  int    `json:"passed"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// Total returns the number of tests counted.
func (s *Summary) Total() int { return s.Passed + s.Skipped + s.Failed }

func (s *Summary) Type() PatternType { return PatternTypeSummary }
