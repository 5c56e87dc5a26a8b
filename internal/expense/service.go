package expense

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	CreateExpenses(ctx context.Context, es []*Expense) error
	GetExpense(ctx context.Context, id int64) (*Expense, error)
	ListExpenses(ctx context.Context) ([]*Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
}

type Service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (s *Service) Catalog() Catalog {
	return s.catalog
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	if err := params.Validate(s.catalog); err != nil {
		return nil, err
	}

	e := newExpense(params, time.Now())
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// CreateBatch validates every row before storing any of them, so a bad row leaves
// the collection untouched.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Expense, error) {
	if len(params) == 0 {
		return nil, nil
	}

	now := time.Now()
	es := make([]*Expense, len(params))

	for i, p := range params {
		if err := p.Validate(s.catalog); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		es[i] = newExpense(p, now)
	}

	if err := s.repo.CreateExpenses(ctx, es); err != nil {
		return nil, fmt.Errorf("create expenses: %w", err)
	}

	return es, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

// List returns all expenses in creation order.
func (s *Service) List(ctx context.Context) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteExpense(ctx, id)
}

// Totals aggregates a fresh snapshot of the stored expenses.
func (s *Service) Totals(ctx context.Context) (Totals, error) {
	records, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	return Aggregate(records, s.catalog)
}

func newExpense(p CreateParams, now time.Time) *Expense {
	return &Expense{
		Category:    p.Category,
		Amount:      p.Amount,
		Description: p.Description,
		CreatedAt:   now.UTC(),
	}
}
