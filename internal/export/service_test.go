package export_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/casa/internal/encoding"
	"github.com/MrJamesThe3rd/casa/internal/export"
)

type reporterFunc func(ctx context.Context, w io.Writer) error

func (f reporterFunc) Report(ctx context.Context, w io.Writer) error { return f(ctx, w) }

func staticReport(s string) reporterFunc {
	return func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestService_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	svc := export.NewService(staticReport("Persona,Días en Casa\nMiguel,163\n"), encoding.UTF8)

	path, err := svc.Export(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "facturas_resultado.csv"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Persona,Días en Casa\nMiguel,163\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestService_Write_Windows1252(t *testing.T) {
	svc := export.NewService(staticReport("Días,€1.00\n"), encoding.Windows1252)

	var buf bytes.Buffer
	require.NoError(t, svc.Write(context.Background(), &buf))
	assert.Equal(t, []byte("D\xEDas,\x801.00\n"), buf.Bytes())
}

func TestService_Write_BOM(t *testing.T) {
	svc := export.NewService(staticReport("x\n"), encoding.UTF8BOM)

	var buf bytes.Buffer
	require.NoError(t, svc.Write(context.Background(), &buf))
	assert.Equal(t, []byte("\xEF\xBB\xBFx\n"), buf.Bytes())
}

func TestService_Export_ReportFails(t *testing.T) {
	dir := t.TempDir()
	svc := export.NewService(reporterFunc(func(context.Context, io.Writer) error {
		return errors.New("db error")
	}), encoding.UTF8)

	_, err := svc.Export(context.Background(), dir)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
