package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/casa/internal/database"
)

func TestParseDriver(t *testing.T) {
	d, err := database.ParseDriver("")
	require.NoError(t, err)
	assert.Equal(t, database.SQLite, d)

	d, err = database.ParseDriver("PGX")
	require.NoError(t, err)
	assert.Equal(t, database.Postgres, d)

	_, err = database.ParseDriver("mysql")
	assert.ErrorIs(t, err, database.ErrUnknownDriver)
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM expenses WHERE id = ? AND category = ?"

	assert.Equal(t, q, database.Rebind(database.SQLite, q))
	assert.Equal(t,
		"SELECT * FROM expenses WHERE id = $1 AND category = $2",
		database.Rebind(database.Postgres, q))
}

func TestNew_SQLiteMigratesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "casa.db")

	db, err := database.New(database.SQLite, path)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM expenses`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, db.Close())

	// Reopening an up-to-date database is a no-op.
	db, err = database.New(database.SQLite, path)
	require.NoError(t, err)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM category_rules`).Scan(&n))
	require.NoError(t, db.Close())
}
