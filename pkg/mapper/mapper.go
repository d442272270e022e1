// Package mapper converts parsed logs and their diffs into report patterns.
package mapper

import (
	"github.com/dkoosis/parsetest/pkg/pattern"
	"github.com/dkoosis/parsetest/pkg/testdiff"
	"github.com/dkoosis/parsetest/pkg/testlog"
)

// Lists selects which per-outcome name lists follow the counts.
type Lists struct {
	Passed  bool
	Skipped bool
	Failed  bool
}

// listOrder is the order name lists are emitted in.
var listOrder = []testlog.Outcome{testlog.Failed, testlog.Skipped, testlog.Passed}

func (l Lists) wants(o testlog.Outcome) bool {
	switch o {
	case testlog.Passed:
		return l.Passed
	case testlog.Skipped:
		return l.Skipped
	case testlog.Failed:
		return l.Failed
	default:
		return false
	}
}

// FromResults builds the report for a single log: its summary, then the
// requested non-empty name lists.
func FromResults(source string, m testlog.OutcomeMapping, lists Lists) []pattern.Pattern {
	patterns := []pattern.Pattern{summary(source, m)}
	for _, o := range listOrder {
		if !lists.wants(o) || m.Count(o) == 0 {
			continue
		}
		patterns = append(patterns, &pattern.TestList{Outcome: o, Names: m.Names(o)})
	}
	return patterns
}

// FromComparison builds the report for two logs: both summaries, the changed
// tests in report order, then the requested unchanged lists.
func FromComparison(cmp *testdiff.Comparison, lists Lists) []pattern.Pattern {
	patterns := []pattern.Pattern{
		summary(cmp.Baseline.Path, cmp.Baseline.Results),
		summary(cmp.Current.Path, cmp.Current.Results),
		changes(cmp),
	}
	for _, o := range listOrder {
		if !lists.wants(o) {
			continue
		}
		names := cmp.Diff.Names(testdiff.Unchanged(o))
		if len(names) == 0 {
			continue
		}
		patterns = append(patterns, &pattern.TestList{Outcome: o, Names: names})
	}
	return patterns
}

func summary(source string, m testlog.OutcomeMapping) *pattern.Summary {
	return &pattern.Summary{
		Source:  source,
		Passed:  m.Count(testlog.Passed),
		Skipped: m.Count(testlog.Skipped),
		Failed:  m.Count(testlog.Failed),
	}
}

func changes(cmp *testdiff.Comparison) *pattern.Diff {
	d := &pattern.Diff{
		Baseline: cmp.Baseline.Path,
		Current:  cmp.Current.Path,
		Changes:  make([]pattern.DiffChange, 0, cmp.Diff.Changed()),
	}
	for _, tr := range testdiff.ReportOrder {
		for _, name := range cmp.Diff.Names(tr) {
			d.Changes = append(d.Changes, pattern.DiffChange{Name: name, Before: tr.Before, After: tr.After})
		}
	}
	return d
}
