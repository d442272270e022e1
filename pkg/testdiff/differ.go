// Package testdiff compares the outcomes of two test logs.
package testdiff

import (
	"sort"

	"github.com/dkoosis/parsetest/pkg/testlog"
)

// Transition is the pair of outcomes a test had in the baseline and the
// current log.
type Transition struct {
	Before testlog.Outcome
	After  testlog.Outcome
}

func (t Transition) String() string {
	return t.Before.String() + "->" + t.After.String()
}

// Unchanged returns the transition from o to o.
func Unchanged(o testlog.Outcome) Transition {
	return Transition{Before: o, After: o}
}

// ReportOrder is the order in which changed transitions are reported.
// Identical transitions and transitions out of Deleted are not listed.
var ReportOrder = []Transition{
	{testlog.Passed, testlog.Failed},
	{testlog.Skipped, testlog.Failed},
	{testlog.New, testlog.Failed},
	{testlog.Failed, testlog.Passed},
	{testlog.Skipped, testlog.Passed},
	{testlog.New, testlog.Passed},
	{testlog.Passed, testlog.Skipped},
	{testlog.Failed, testlog.Skipped},
	{testlog.New, testlog.Skipped},
	{testlog.Passed, testlog.Deleted},
	{testlog.Skipped, testlog.Deleted},
	{testlog.Failed, testlog.Deleted},
}

// TransitionMapping maps each observed transition to its sorted test names.
// It is immutable once built.
type TransitionMapping struct {
	buckets map[Transition][]string
}

// Names returns the sorted names that made transition t, or nil.
func (m TransitionMapping) Names(t Transition) []string {
	names, ok := m.buckets[t]
	if !ok {
		return nil
	}
	return append([]string(nil), names...)
}

// Has reports whether any test made transition t.
func (m TransitionMapping) Has(t Transition) bool {
	_, ok := m.buckets[t]
	return ok
}

// Count returns the number of tests that made transition t.
func (m TransitionMapping) Count(t Transition) int {
	return len(m.buckets[t])
}

// Len returns the number of tests across all transitions.
func (m TransitionMapping) Len() int {
	var n int
	for _, names := range m.buckets {
		n += len(names)
	}
	return n
}

// Empty reports whether the mapping holds no transitions.
func (m TransitionMapping) Empty() bool { return len(m.buckets) == 0 }

// Transitions returns every observed transition ordered by (Before, After).
func (m TransitionMapping) Transitions() []Transition {
	out := make([]Transition, 0, len(m.buckets))
	for t := range m.buckets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Before != out[j].Before {
			return out[i].Before < out[j].Before
		}
		return out[i].After < out[j].After
	})
	return out
}

// Changed reports how many tests made a transition listed in ReportOrder.
func (m TransitionMapping) Changed() int {
	var n int
	for _, t := range ReportOrder {
		n += m.Count(t)
	}
	return n
}

// Invert turns m into a name → outcome lookup. A name seen again gets a
// " (n)" suffix so that every occurrence keeps its own entry.
func Invert(m testlog.OutcomeMapping) map[string]testlog.Outcome {
	var alloc testlog.NameAllocator
	inverted := make(map[string]testlog.Outcome, m.Len())
	m.Walk(func(o testlog.Outcome, name string) {
		inverted[alloc.Claim(name)] = o
	})
	return inverted
}

// Diff reconciles baseline a with current b. Tests missing from a are New,
// tests missing from b are Deleted. Duplicate names are numbered per side
// before matching.
func Diff(a, b testlog.OutcomeMapping) TransitionMapping {
	before := Invert(a)
	after := Invert(b)

	all := make(map[string]struct{}, len(before)+len(after))
	for name := range before {
		all[name] = struct{}{}
	}
	for name := range after {
		all[name] = struct{}{}
	}

	buckets := make(map[Transition][]string)
	for name := range all {
		from, ok := before[name]
		if !ok {
			from = testlog.New
		}
		to, ok := after[name]
		if !ok {
			to = testlog.Deleted
		}
		key := Transition{Before: from, After: to}
		buckets[key] = append(buckets[key], name)
	}
	for _, names := range buckets {
		sort.Strings(names)
	}
	return TransitionMapping{buckets: buckets}
}
