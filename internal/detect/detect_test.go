package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{"SARIF", `{"version":"2.1.0","$schema":"https://sarif.dev","runs":[{"tool":{"driver":{"name":"test"}},"results":[]}]}`, SARIF},
		{"go test -json", `{"Time":"2024-01-01T00:00:00Z","Action":"start","Package":"example.com/pkg"}` + "\n", GoTestJSON},
		{"go test -json output", `{"Action":"output","Package":"example.com/pkg","Output":"=== RUN TestFoo\n"}` + "\n", GoTestJSON},
		{"leading whitespace", `  {"Action":"pass","Package":"x"}` + "\n", GoTestJSON},
		{"console log", "Build started\n  Passed   Suite.Works\n", ConsoleLog},
		{"console log with BOM", "\ufeff  Failed   Suite.Breaks\n", ConsoleLog},
		{"plain text", "this is not a test log", Unknown},
		{"invalid JSON", "{invalid", Unknown},
		{"empty", "", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sniff([]byte(tt.input)))
		})
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "console log", ConsoleLog.String())
	assert.Equal(t, "go test -json", GoTestJSON.String())
	assert.Equal(t, "unknown", Format(42).String())
}

func TestSniffFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Action":"run","Package":"p","Test":"TestX"}`+"\n"), 0o600))

	got, err := SniffFile(path)
	require.NoError(t, err)
	assert.Equal(t, GoTestJSON, got)

	_, err = SniffFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
