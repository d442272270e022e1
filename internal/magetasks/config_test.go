package magetasks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	require.NoError(t, Initialize())

	info, err := os.Stat(filepath.Join(tmpDir, "bin"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	expectedRoot, _ := filepath.EvalSymlinks(tmpDir)
	actualRoot, _ := filepath.EvalSymlinks(ProjectRoot)
	assert.Equal(t, expectedRoot, actualRoot)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "github.com/dkoosis/parsetest", ModulePath)
	assert.Equal(t, "./bin/parsetest", BinPath)
	assert.Equal(t, "./cmd/parsetest", MainPackage)
}

func TestLDFlags(t *testing.T) {
	flags := LDFlags("v1.2.0", "abc123", "2026-01-02T03:04:05Z")

	assert.Contains(t, flags, "-X 'github.com/dkoosis/parsetest/internal/version.Version=v1.2.0'")
	assert.Contains(t, flags, "-X 'github.com/dkoosis/parsetest/internal/version.CommitHash=abc123'")
	assert.Contains(t, flags, "-X 'github.com/dkoosis/parsetest/internal/version.BuildDate=2026-01-02T03:04:05Z'")
}
