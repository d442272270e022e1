// Package testlog parses plain-text test runner logs into per-outcome test lists.
package testlog

import (
	"fmt"
	"sort"
	"strings"
)

// Outcome classifies a single test's result.
// Passed, Skipped and Failed come from a log; New and Deleted are only
// produced when two logs are compared.
type Outcome int

const (
	Passed Outcome = iota
	Skipped
	Failed
	Deleted
	New
)

// ParsedOutcomes lists the outcomes a log can report, in walk order.
var ParsedOutcomes = []Outcome{Passed, Skipped, Failed}

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "Passed"
	case Skipped:
		return "Skipped"
	case Failed:
		return "Failed"
	case Deleted:
		return "Deleted"
	case New:
		return "New"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Label returns the fixed-width console label, trailing padding included.
func (o Outcome) Label() string {
	switch o {
	case Passed:
		return "PASSED   "
	case Skipped:
		return "SKIPPED  "
	case Failed:
		return "FAILED   "
	case New:
		return "NEW      "
	case Deleted:
		return "DELETED  "
	default:
		return strings.ToUpper(o.String())
	}
}

// MarshalText encodes the outcome as its lower-case name.
func (o Outcome) MarshalText() ([]byte, error) {
	switch o {
	case Passed, Skipped, Failed, Deleted, New:
		return []byte(strings.ToLower(o.String())), nil
	default:
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
}

// UnmarshalText is the inverse of MarshalText.
func (o *Outcome) UnmarshalText(b []byte) error {
	for _, c := range []Outcome{Passed, Skipped, Failed, Deleted, New} {
		if strings.EqualFold(string(b), c.String()) {
			*o = c
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", string(b))
}

// TestRecord is a test name and the class it was reported under.
type TestRecord struct {
	Class string
	Name  string
}

// LongName returns the class-qualified name.
func (r TestRecord) LongName() string { return r.Class + r.Name }

// ShortName returns the bare test name.
func (r TestRecord) ShortName() string { return r.Name }

// OutcomeMapping maps each observed outcome to its sorted test names.
// It is immutable once built; accessors hand out copies.
type OutcomeMapping struct {
	byOutcome map[Outcome][]string
}

// NewOutcomeMapping builds a mapping from m. Names are copied and sorted,
// and outcomes with no names are dropped.
func NewOutcomeMapping(m map[Outcome][]string) OutcomeMapping {
	out := OutcomeMapping{byOutcome: make(map[Outcome][]string, len(m))}
	for o, names := range m {
		if len(names) == 0 {
			continue
		}
		cp := append([]string(nil), names...)
		sort.Strings(cp)
		out.byOutcome[o] = cp
	}
	return out
}

// Names returns the sorted names recorded under o, or nil.
func (m OutcomeMapping) Names(o Outcome) []string {
	names, ok := m.byOutcome[o]
	if !ok {
		return nil
	}
	return append([]string(nil), names...)
}

// Has reports whether at least one test was recorded under o.
func (m OutcomeMapping) Has(o Outcome) bool {
	_, ok := m.byOutcome[o]
	return ok
}

// Count returns the number of names recorded under o.
func (m OutcomeMapping) Count(o Outcome) int {
	return len(m.byOutcome[o])
}

// Len returns the number of names across all outcomes.
func (m OutcomeMapping) Len() int {
	var n int
	for _, names := range m.byOutcome {
		n += len(names)
	}
	return n
}

// Outcomes returns the outcomes present, in declaration order.
func (m OutcomeMapping) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(m.byOutcome))
	for o := range m.byOutcome {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Empty reports whether no tests were recorded.
func (m OutcomeMapping) Empty() bool { return len(m.byOutcome) == 0 }

// Disambiguated returns a copy in which repeated names get a " (n)" suffix,
// numbered per base name in walk order. No name repeats under one outcome
// in the result.
func (m OutcomeMapping) Disambiguated() OutcomeMapping {
	var alloc NameAllocator
	out := make(map[Outcome][]string, len(m.byOutcome))
	m.Walk(func(o Outcome, name string) {
		out[o] = append(out[o], alloc.Claim(name))
	})
	return NewOutcomeMapping(out)
}

// Walk calls fn for every recorded name: parsed outcomes first in
// ParsedOutcomes order, then any others, names in sorted order.
func (m OutcomeMapping) Walk(fn func(o Outcome, name string)) {
	for _, o := range m.walkOrder() {
		for _, name := range m.byOutcome[o] {
			fn(o, name)
		}
	}
}

func (m OutcomeMapping) walkOrder() []Outcome {
	order := make([]Outcome, 0, len(m.byOutcome))
	for _, o := range ParsedOutcomes {
		if m.Has(o) {
			order = append(order, o)
		}
	}
	for _, o := range m.Outcomes() {
		if o != Passed && o != Skipped && o != Failed {
			order = append(order, o)
		}
	}
	return order
}

// NameAllocator hands out unique names, suffixing repeats with " (n)".
// The zero value is ready to use.
type NameAllocator struct {
	taken map[string]struct{}
	dupes map[string]int
}

// Claim returns name if unused, otherwise the next free "name (n)".
func (a *NameAllocator) Claim(name string) string {
	if a.taken == nil {
		a.taken = make(map[string]struct{})
		a.dupes = make(map[string]int)
	}
	if _, ok := a.taken[name]; !ok {
		a.taken[name] = struct{}{}
		return name
	}
	for {
		a.dupes[name]++
		candidate := fmt.Sprintf("%s (%d)", name, a.dupes[name])
		if _, ok := a.taken[candidate]; !ok {
			a.taken[candidate] = struct{}{}
			return candidate
		}
	}
}
