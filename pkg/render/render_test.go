package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/parsetest/pkg/pattern"
	"github.com/dkoosis/parsetest/pkg/testlog"
)

func singleLog() []pattern.Pattern {
	return []pattern.Pattern{
		&pattern.Summary{Source: "run.log", Passed: 2, Skipped: 1, Failed: 1},
		&pattern.TestList{Outcome: testlog.Failed, Names: []string{"Broken"}},
		&pattern.TestList{Outcome: testlog.Passed, Names: []string{"Fine", "Good"}},
	}
}

func twoLogs(changes ...pattern.DiffChange) []pattern.Pattern {
	return []pattern.Pattern{
		&pattern.Summary{Source: "a.log", Passed: 1, Failed: 1},
		&pattern.Summary{Source: "b.log", Passed: 2},
		&pattern.Diff{Baseline: "a.log", Current: "b.log", Changes: changes},
	}
}

func TestText_SingleLog(t *testing.T) {
	want := ">>> Results of run.log\n" +
		"Passed: 2, Skipped: 1, Failed: 1\n" +
		"\n" +
		"FAILED   Broken\n" +
		"\n" +
		"PASSED   Fine\n" +
		"PASSED   Good\n"

	assert.Equal(t, want, NewText().Render(singleLog()))
}

func TestText_Diff(t *testing.T) {
	patterns := twoLogs(
		pattern.DiffChange{Name: "T3", Before: testlog.New, After: testlog.Passed},
		pattern.DiffChange{Name: "T2", Before: testlog.Failed, After: testlog.Deleted},
	)
	patterns = append(patterns, &pattern.TestList{Outcome: testlog.Passed, Names: []string{"T1"}})

	want := ">>> Results of a.log\n" +
		"Passed: 1, Skipped: 0, Failed: 1\n" +
		">>> Results of b.log\n" +
		"Passed: 2, Skipped: 0, Failed: 0\n" +
		"|==================== DIFF ====================|\n" +
		"NEW      => PASSED   T3\n" +
		"FAILED   => DELETED  T2\n" +
		"\n" +
		"PASSED   T1\n"

	assert.Equal(t, want, NewText().Render(patterns))
}

func TestText_DiffWithoutChangesPrintsNone(t *testing.T) {
	out := NewText().Render(twoLogs())
	assert.True(t, strings.HasSuffix(out, DiffHeader+"\nNone\n"), out)
}

func TestText_EmptyListIsOmitted(t *testing.T) {
	out := NewText().Render([]pattern.Pattern{
		&pattern.Summary{Source: "x"},
		&pattern.TestList{Outcome: testlog.Skipped},
	})
	assert.Equal(t, ">>> Results of x\nPassed: 0, Skipped: 0, Failed: 0\n", out)
}

func TestTerminal_RenderMono(t *testing.T) {
	patterns := twoLogs(pattern.DiffChange{Name: "Regressed", Before: testlog.Passed, After: testlog.Failed})
	out := NewTerminal(MonoTheme(), 60).Render(patterns)

	assert.Contains(t, out, "a.log")
	assert.Contains(t, out, "Passed: 2")
	assert.Contains(t, out, "DIFF · 1 changed")
	assert.Contains(t, out, "PASSED   => FAILED   Regressed")
}

func TestTerminal_NoChanges(t *testing.T) {
	out := NewTerminal(DefaultTheme(), 0).Render(twoLogs())
	assert.Contains(t, out, "None")
}

func TestTerminal_LongSourceIsTruncated(t *testing.T) {
	long := strings.Repeat("d/", 40) + "run.log"
	out := NewTerminal(MonoTheme(), 80).Render([]pattern.Pattern{&pattern.Summary{Source: long, Passed: 1}})
	assert.NotContains(t, out, long)
	assert.Contains(t, out, "…")
}

func TestJSON_Render(t *testing.T) {
	out := NewJSON().Render(twoLogs(pattern.DiffChange{Name: "T3", Before: testlog.New, After: testlog.Passed}))

	var doc struct {
		Version  string `json:"version"`
		Patterns []struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		} `json:"patterns"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "1.0", doc.Version)
	require.Len(t, doc.Patterns, 3)
	assert.Equal(t, "summary", doc.Patterns[0].Type)
	assert.Equal(t, "diff", doc.Patterns[2].Type)
	assert.JSONEq(t,
		`{"baseline":"a.log","current":"b.log","changes":[{"name":"T3","before":"new","after":"passed"}]}`,
		string(doc.Patterns[2].Data))
}

func TestThemeByName(t *testing.T) {
	for _, name := range ThemeNames() {
		assert.Equal(t, name, ThemeByName(name).Name)
	}
	assert.Equal(t, "default", ThemeByName("neon").Name)
}

func TestJSON_MatchesReportSchema(t *testing.T) {
	cases := map[string][]pattern.Pattern{
		"single log": singleLog(),
		"diff": twoLogs(
			pattern.DiffChange{Name: "T3", Before: testlog.New, After: testlog.Passed},
			pattern.DiffChange{Name: "T2", Before: testlog.Failed, After: testlog.Deleted},
		),
		"no patterns": nil,
	}
	for name, patterns := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, ValidateJSON([]byte(NewJSON().Render(patterns))))
		})
	}
}

func TestValidateJSON_RejectsMalformedReports(t *testing.T) {
	assert.Error(t, ValidateJSON([]byte(`{"version":"1.0"}`)))
	assert.Error(t, ValidateJSON([]byte(`{"version":"2.0","patterns":[]}`)))
	assert.Error(t, ValidateJSON([]byte(`{"version":"1.0","patterns":[{"type":"summary","data":{"source":"x","passed":-1,"skipped":0,"failed":0}}]}`)))
	assert.Error(t, ValidateJSON([]byte(`{"version":"1.0","patterns":[{"type":"test-list","data":{"outcome":"flaky","names":[]}}]}`)))
	assert.Error(t, ValidateJSON([]byte(`not json`)))
}
