package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/casa/internal/app"
	"github.com/MrJamesThe3rd/casa/internal/config"
	"github.com/MrJamesThe3rd/casa/internal/expense"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()
	houseFile := filepath.Join(dir, "casa.toml")
	require.NoError(t, os.WriteFile(houseFile, []byte(`
start = "2025-03-15"
end = "2025-09-06"
categories = ["gas", "agua"]

[[resident]]
name = "A"
start = "2025-03-15"
end = "2025-09-06"
`), 0o644))

	t.Setenv("HOUSEHOLD_FILE", houseFile)
	t.Setenv("DB_PATH", filepath.Join(dir, "casa.db"))
	t.Setenv("EXPORT_DIR", dir)
	t.Setenv("REPORT_CHARSET", "utf-8-bom")

	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	assert.Equal(t, expense.Catalog{"gas", "agua"}, a.Expenses.Catalog())

	params, err := expense.ParseParams(a.Expenses.Catalog(), "agua", "12", "")
	require.NoError(t, err)

	_, err = a.Expenses.Create(context.Background(), params)
	require.NoError(t, err)

	path, err := a.Export.Export(context.Background(), cfg.Report.ExportDir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\xEF\xBB\xBFPersona,")
	assert.Contains(t, string(data), "A,€12.00,176,100.0%,€0.00,€12.00")
}

func TestNew_MissingHousehold(t *testing.T) {
	t.Setenv("HOUSEHOLD_FILE", filepath.Join(t.TempDir(), "nope.toml"))

	cfg, err := config.Load()
	require.NoError(t, err)

	_, err = app.New(cfg, nil)
	assert.Error(t, err)
}
