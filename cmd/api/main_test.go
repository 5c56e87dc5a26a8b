package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	houseFile := filepath.Join(dir, "casa.toml")
	require.NoError(t, os.WriteFile(houseFile, []byte(`
start = "2025-03-15"
end = "2025-09-06"
`), 0o644))

	t.Setenv("HOUSEHOLD_FILE", houseFile)
	t.Setenv("DB_PATH", filepath.Join(dir, "casa.db"))
	t.Setenv("PORT", "0")
	t.Setenv("LOG_LEVEL", "error")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, run(ctx))
	assert.FileExists(t, filepath.Join(dir, "casa.db"))
}

func TestRun_ReturnsStartupErrors(t *testing.T) {
	t.Setenv("HOUSEHOLD_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	assert.Error(t, run(context.Background()))
}

func TestRun_RejectsInMemoryDatabase(t *testing.T) {
	t.Setenv("DB_PATH", ":memory:")

	assert.Error(t, run(context.Background()))
}
