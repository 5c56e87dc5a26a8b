package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/casa/internal/database"
	"github.com/MrJamesThe3rd/casa/internal/expense"
)

type Store struct {
	db     *sql.DB
	driver database.Driver
}

func New(db *sql.DB, driver database.Driver) *Store {
	return &Store{db: db, driver: driver}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanExpense expects columns in the order of selectExpenseColumns.
func scanExpense(s scanner) (*expense.Expense, error) {
	var (
		e         expense.Expense
		category  string
		createdAt int64
	)

	if err := s.Scan(&e.ID, &category, &e.Amount, &e.Description, &createdAt); err != nil {
		return nil, err
	}

	e.Category = expense.Category(category)
	e.CreatedAt = time.UnixMilli(createdAt).UTC()

	return &e, nil
}

const selectExpenseColumns = `id, category, amount, description, created_at`

const insertExpense = `
	INSERT INTO expenses (category, amount, description, created_at)
	VALUES (?, ?, ?, ?)
	RETURNING id
`

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) insert(ctx context.Context, q queryRower, e *expense.Expense) error {
	return q.QueryRowContext(ctx, database.Rebind(s.driver, insertExpense),
		string(e.Category),
		e.Amount.String(),
		e.Description,
		e.CreatedAt.UnixMilli(),
	).Scan(&e.ID)
}

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	if err := s.insert(ctx, s.db, e); err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

// CreateExpenses inserts all rows in one transaction.
func (s *Store) CreateExpenses(ctx context.Context, es []*expense.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range es {
		if err := s.insert(ctx, tx, e); err != nil {
			return fmt.Errorf("creating expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, id int64) (*expense.Expense, error) {
	query := database.Rebind(s.driver, `SELECT `+selectExpenseColumns+` FROM expenses WHERE id = ?`)

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var es []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		es = append(es, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return es, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, database.Rebind(s.driver, `DELETE FROM expenses WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	if n == 0 {
		return expense.ErrNotFound
	}

	return nil
}
