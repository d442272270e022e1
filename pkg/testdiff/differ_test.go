package testdiff

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/parsetest/pkg/testlog"
)

func mapping(m map[testlog.Outcome][]string) testlog.OutcomeMapping {
	return testlog.NewOutcomeMapping(m)
}

func allNames(m TransitionMapping) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tr := range m.Transitions() {
		for _, name := range m.Names(tr) {
			out[name] = struct{}{}
		}
	}
	return out
}

func TestDiff_AddedRemovedAndKept(t *testing.T) {
	a := mapping(map[testlog.Outcome][]string{
		testlog.Passed: {"T1"},
		testlog.Failed: {"T2"},
	})
	b := mapping(map[testlog.Outcome][]string{
		testlog.Passed: {"T1", "T3"},
	})

	d := Diff(a, b)

	assert.Equal(t, []string{"T1"}, d.Names(Unchanged(testlog.Passed)))
	assert.Equal(t, []string{"T2"}, d.Names(Transition{testlog.Failed, testlog.Deleted}))
	assert.Equal(t, []string{"T3"}, d.Names(Transition{testlog.New, testlog.Passed}))
	assert.Len(t, d.Transitions(), 3)
	assert.Equal(t, 2, d.Changed())
}

func TestDiff_EmptyLogs(t *testing.T) {
	d := Diff(testlog.OutcomeMapping{}, mapping(nil))
	assert.True(t, d.Empty())
	assert.Zero(t, d.Len())
	assert.Empty(t, d.Transitions())
}

func TestDiff_AgainstItselfHasOnlyUnchangedBuckets(t *testing.T) {
	a := mapping(map[testlog.Outcome][]string{
		testlog.Passed:  {"p1", "p2"},
		testlog.Skipped: {"s1"},
		testlog.Failed:  {"f1", "f2", "f3"},
	})

	d := Diff(a, a)

	for _, tr := range d.Transitions() {
		assert.Equal(t, tr.Before, tr.After, "unexpected transition %s", tr)
		assert.NotEqual(t, testlog.New, tr.Before)
		assert.NotEqual(t, testlog.Deleted, tr.After)
	}
	for _, o := range testlog.ParsedOutcomes {
		assert.Equal(t, a.Names(o), d.Names(Unchanged(o)))
	}
	assert.Zero(t, d.Changed())
}

func TestDiff_IsDirectional(t *testing.T) {
	a := mapping(map[testlog.Outcome][]string{testlog.Passed: {"old"}})
	b := mapping(map[testlog.Outcome][]string{testlog.Failed: {"fresh"}})

	ab := Diff(a, b)
	ba := Diff(b, a)

	assert.Equal(t, []string{"fresh"}, ab.Names(Transition{testlog.New, testlog.Failed}))
	assert.Equal(t, []string{"fresh"}, ba.Names(Transition{testlog.Failed, testlog.Deleted}))
	assert.Equal(t, []string{"old"}, ab.Names(Transition{testlog.Passed, testlog.Deleted}))
	assert.Equal(t, []string{"old"}, ba.Names(Transition{testlog.New, testlog.Passed}))
	assert.NotEqual(t, ab.Transitions(), ba.Transitions())
}

func TestDiff_DuplicatesAreNumberedPerSide(t *testing.T) {
	a := mapping(map[testlog.Outcome][]string{
		testlog.Passed: {"Foo", "Foo", "Foo"},
	})
	b := mapping(map[testlog.Outcome][]string{
		testlog.Passed: {"Foo"},
		testlog.Failed: {"Foo"},
	})

	inverted := Invert(a)
	assert.Equal(t, map[string]testlog.Outcome{
		"Foo":     testlog.Passed,
		"Foo (1)": testlog.Passed,
		"Foo (2)": testlog.Passed,
	}, inverted)

	d := Diff(a, b)
	assert.Equal(t, []string{"Foo"}, d.Names(Unchanged(testlog.Passed)))
	assert.Equal(t, []string{"Foo (1)"}, d.Names(Transition{testlog.Passed, testlog.Failed}))
	assert.Equal(t, []string{"Foo (2)"}, d.Names(Transition{testlog.Passed, testlog.Deleted}))
}

func TestDiff_UnionCompleteness(t *testing.T) {
	a := mapping(map[testlog.Outcome][]string{
		testlog.Passed:  {"a", "b", "dup", "dup"},
		testlog.Skipped: {"c"},
		testlog.Failed:  {"d", "dup"},
	})
	b := mapping(map[testlog.Outcome][]string{
		testlog.Passed:  {"a", "e"},
		testlog.Skipped: {"d", "dup"},
		testlog.Failed:  {"c", "f", "f"},
	})

	d := Diff(a, b)

	want := make(map[string]struct{})
	for name := range Invert(a) {
		want[name] = struct{}{}
	}
	for name := range Invert(b) {
		want[name] = struct{}{}
	}
	assert.Equal(t, want, allNames(d))
	assert.Equal(t, len(want), d.Len())

	for _, tr := range d.Transitions() {
		assert.IsIncreasing(t, d.Names(tr))
	}
}

func TestReportOrder(t *testing.T) {
	require.Len(t, ReportOrder, 12)
	seen := make(map[Transition]bool)
	for _, tr := range ReportOrder {
		assert.NotEqual(t, tr.Before, tr.After)
		assert.NotEqual(t, testlog.Deleted, tr.Before)
		assert.False(t, seen[tr], "duplicate %s", tr)
		seen[tr] = true
	}
	assert.Equal(t, Transition{testlog.Passed, testlog.Failed}, ReportOrder[0])
	assert.Equal(t, Transition{testlog.Failed, testlog.Deleted}, ReportOrder[11])
}

func TestTransitionMapping_NamesAreCopies(t *testing.T) {
	d := Diff(mapping(map[testlog.Outcome][]string{testlog.Failed: {"x"}}), testlog.OutcomeMapping{})
	tr := Transition{testlog.Failed, testlog.Deleted}
	names := d.Names(tr)
	names[0] = "y"
	assert.Equal(t, []string{"x"}, d.Names(tr))
	assert.Nil(t, d.Names(Unchanged(testlog.Passed)))
}

func writeLog(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

func result(marker, name string) string {
	prefix := "  " + marker
	return prefix + strings.Repeat(" ", testlog.NameColumn-len(prefix)) + name
}

func TestDiffFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeLog(t, dir, "a.log",
		result(testlog.PassedMarker, "T1"),
		result(testlog.FailedMarker, "T2"),
	)
	b := writeLog(t, dir, "b.log",
		result(testlog.PassedMarker, "T1"),
		result(testlog.PassedMarker, "T3"),
	)

	cmp, err := DiffFiles(context.Background(), a, b, testlog.ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, a, cmp.Baseline.Path)
	assert.Equal(t, 2, cmp.Baseline.Stats.Results)
	assert.Equal(t, []string{"T1", "T3"}, cmp.Current.Results.Names(testlog.Passed))
	assert.Equal(t, []string{"T3"}, cmp.Diff.Names(Transition{testlog.New, testlog.Passed}))
}

func TestDiffFiles_EitherMissingFails(t *testing.T) {
	dir := t.TempDir()
	ok := writeLog(t, dir, "ok.log", result(testlog.PassedMarker, "T1"))
	missing := filepath.Join(dir, "missing.log")

	cmp, err := DiffFiles(context.Background(), ok, missing, testlog.ParseOptions{})
	require.Error(t, err)
	assert.Nil(t, cmp)

	var pe *testlog.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, missing, pe.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
