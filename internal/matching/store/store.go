package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/casa/internal/database"
	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/matching"
)

type Store struct {
	db     *sql.DB
	driver database.Driver
}

func New(db *sql.DB, driver database.Driver) *Store {
	return &Store{db: db, driver: driver}
}

// FindMatch picks the longest stored pattern contained in description, ignoring case.
func (s *Store) FindMatch(ctx context.Context, description string) (expense.Category, error) {
	query := database.Rebind(s.driver, `
		SELECT category
		FROM category_rules
		WHERE LOWER(?) LIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, id DESC
		LIMIT 1
	`)

	var category string

	err := s.db.QueryRowContext(ctx, query, description).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return expense.Category(category), nil
}

// SaveRule stores rule, replacing the category of an existing pattern.
func (s *Store) SaveRule(ctx context.Context, rule matching.Rule) error {
	query := database.Rebind(s.driver, `
		INSERT INTO category_rules (pattern, category)
		VALUES (?, ?)
		ON CONFLICT (pattern) DO UPDATE SET category = excluded.category
	`)

	if _, err := s.db.ExecContext(ctx, query, rule.Pattern, string(rule.Category)); err != nil {
		return fmt.Errorf("saving rule: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context) ([]matching.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pattern, category FROM category_rules ORDER BY pattern`)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	var rules []matching.Rule

	for rows.Next() {
		var (
			r   matching.Rule
			cat string
		)

		if err := rows.Scan(&r.Pattern, &cat); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}

		r.Category = expense.Category(cat)
		rules = append(rules, r)
	}

	return rules, rows.Err()
}
