package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/casa/internal/expense"
)

var ErrMissingPattern = errors.New("missing pattern")

// Rule maps a description fragment to the category bills containing it belong to.
type Rule struct {
	Pattern  string           `json:"pattern"`
	Category expense.Category `json:"category"`
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, description string) (expense.Category, error)
	SaveRule(ctx context.Context, rule Rule) error
	ListRules(ctx context.Context) ([]Rule, error)
}

type Service struct {
	repo    Repository
	catalog expense.Catalog
}

func NewService(repo Repository, catalog expense.Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// Suggest returns the category of the longest rule contained in description.
// Returns an empty category if no rule matches, or if the match is no longer in the catalog.
func (s *Service) Suggest(ctx context.Context, description string) (expense.Category, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", nil
	}

	cat, err := s.repo.FindMatch(ctx, description)
	if err != nil {
		return "", err
	}

	if cat != "" && !s.catalog.Contains(cat) {
		return "", nil
	}

	return cat, nil
}

// Learn remembers that descriptions containing pattern belong to category. Learning
// an existing pattern again replaces its category.
func (s *Service) Learn(ctx context.Context, pattern, category string) (Rule, error) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return Rule{}, &expense.FieldError{Field: "pattern", Err: ErrMissingPattern}
	}

	cat, err := s.catalog.Parse(category)
	if err != nil {
		return Rule{}, err
	}

	rule := Rule{Pattern: pattern, Category: cat}
	if err := s.repo.SaveRule(ctx, rule); err != nil {
		return Rule{}, fmt.Errorf("saving rule: %w", err)
	}

	return rule, nil
}

func (s *Service) Rules(ctx context.Context) ([]Rule, error) {
	return s.repo.ListRules(ctx)
}
