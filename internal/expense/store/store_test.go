package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/casa/internal/database"
	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/expense/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.New(database.SQLite, filepath.Join(t.TempDir(), "casa.db"))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return store.New(db, database.SQLite)
}

func TestStore_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	created := time.Date(2025, 3, 20, 10, 30, 0, 0, time.UTC)
	e := &expense.Expense{
		Category:    "gas",
		Amount:      decimal.RequireFromString("45.20"),
		Description: "Factura marzo",
		CreatedAt:   created,
	}

	require.NoError(t, s.CreateExpense(ctx, e))
	assert.NotZero(t, e.ID)

	got, err := s.GetExpense(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.Category("gas"), got.Category)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("45.2")))
	assert.Equal(t, "Factura marzo", got.Description)
	assert.True(t, got.CreatedAt.Equal(created))

	require.NoError(t, s.DeleteExpense(ctx, e.ID))

	_, err = s.GetExpense(ctx, e.ID)
	assert.ErrorIs(t, err, expense.ErrNotFound)

	assert.ErrorIs(t, s.DeleteExpense(ctx, e.ID), expense.ErrNotFound)
}

func TestStore_ListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	now := time.Now().UTC()
	batch := []*expense.Expense{
		{Category: "internet", Amount: decimal.NewFromInt(30), CreatedAt: now},
		{Category: "gas", Amount: decimal.RequireFromString("0.01"), CreatedAt: now},
		{Category: "basuras", Amount: decimal.NewFromInt(12), CreatedAt: now},
	}

	require.NoError(t, s.CreateExpenses(ctx, batch))

	list, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	for i := range batch {
		assert.Equal(t, batch[i].ID, list[i].ID)
		assert.Equal(t, batch[i].Category, list[i].Category)
	}

	assert.Less(t, list[0].ID, list[1].ID)
	assert.True(t, list[1].Amount.Equal(decimal.RequireFromString("0.01")))
}

func TestStore_ListEmpty(t *testing.T) {
	list, err := newStore(t).ListExpenses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
