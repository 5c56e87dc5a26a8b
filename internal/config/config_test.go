package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/casa/internal/config"
	"github.com/MrJamesThe3rd/casa/internal/database"
	"github.com/MrJamesThe3rd/casa/internal/encoding"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Casa", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "data/casa.db", cfg.ConnectionString())
	assert.Equal(t, "€", cfg.Report.Currency)

	cs, err := cfg.Charset()
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF8, cs)
}

func TestLoad_Postgres(t *testing.T) {
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := config.Load()
	require.NoError(t, err)

	d, err := cfg.Driver()
	require.NoError(t, err)
	assert.Equal(t, database.Postgres, d)
	assert.Equal(t, "postgres://postgres:secret@db:5432/casa?sslmode=disable", cfg.ConnectionString())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("REPORT_CHARSET", "ebcdic")

	_, err := config.Load()
	assert.ErrorIs(t, err, encoding.ErrUnsupportedCharset)
}

func TestLoad_RejectsInMemorySQLite(t *testing.T) {
	for _, path := range []string{":memory:", "file::memory:?cache=shared", "file:casa?mode=memory"} {
		t.Run(path, func(t *testing.T) {
			t.Setenv("DB_PATH", path)

			_, err := config.Load()
			assert.ErrorIs(t, err, config.ErrInMemoryDatabase)
		})
	}
}

func TestLoad_InMemoryPathIgnoredForPostgres(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PATH", ":memory:")

	_, err := config.Load()
	assert.NoError(t, err)
}
