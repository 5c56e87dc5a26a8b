package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/casa/internal/database"
	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/matching"
	"github.com/MrJamesThe3rd/casa/internal/matching/store"
)

func TestStore_Rules(t *testing.T) {
	ctx := context.Background()

	db, err := database.New(database.SQLite, filepath.Join(t.TempDir(), "casa.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := store.New(db, database.SQLite)

	got, err := s.FindMatch(ctx, "anything")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.SaveRule(ctx, matching.Rule{Pattern: "iberdrola", Category: "gas"}))
	require.NoError(t, s.SaveRule(ctx, matching.Rule{Pattern: "iberdrola", Category: "electricidad"}))
	require.NoError(t, s.SaveRule(ctx, matching.Rule{Pattern: "iberdrola fibra", Category: "internet"}))

	got, err = s.FindMatch(ctx, "IBERDROLA CLIENTES")
	require.NoError(t, err)
	assert.Equal(t, expense.Category("electricidad"), got)

	got, err = s.FindMatch(ctx, "Iberdrola Fibra 600Mb")
	require.NoError(t, err)
	assert.Equal(t, expense.Category("internet"), got)

	rules, err := s.ListRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, []matching.Rule{
		{Pattern: "iberdrola", Category: "electricidad"},
		{Pattern: "iberdrola fibra", Category: "internet"},
	}, rules)
}
