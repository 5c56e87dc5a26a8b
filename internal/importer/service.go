package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/importer/sheet"
)

// Suggester guesses a category from a bill description. An empty category means
// no rule matched.
type Suggester interface {
	Suggest(ctx context.Context, description string) (expense.Category, error)
}

type Service struct {
	sheetImporter Importer
	catalog       expense.Catalog
	suggester     Suggester
}

// NewService builds an importer for catalog. suggester may be nil.
func NewService(catalog expense.Catalog, suggester Suggester) *Service {
	return &Service{
		sheetImporter: sheetAdapter{sheet.NewParser()},
		catalog:       catalog,
		suggester:     suggester,
	}
}

// Import parses r and resolves every row to a valid expense. Rows without a category
// fall back to the learnt rules. Any row that still cannot be resolved fails the import.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader) ([]expense.CreateParams, error) {
	var importer Importer

	switch format {
	case FormatSheet, "":
		importer = s.sheetImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	rows, err := importer.Parse(r)
	if err != nil {
		return nil, err
	}

	params := make([]expense.CreateParams, 0, len(rows))

	for _, row := range rows {
		cat, err := s.resolve(ctx, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row.Number, err)
		}

		params = append(params, expense.CreateParams{
			Category:    cat,
			Amount:      row.Amount,
			Description: row.Description,
		})
	}

	return params, nil
}

func (s *Service) resolve(ctx context.Context, row Row) (expense.Category, error) {
	if row.Category != "" {
		return s.catalog.Parse(row.Category)
	}

	if s.suggester != nil && row.Description != "" {
		suggested, err := s.suggester.Suggest(ctx, row.Description)
		if err != nil {
			slog.WarnContext(ctx, "category suggestion failed", "description", row.Description, "error", err)
		} else if suggested != "" {
			return s.catalog.Parse(string(suggested))
		}
	}

	return "", &expense.FieldError{Field: "category", Err: expense.ErrMissingCategory}
}

// sheetAdapter converts the sheet parser's records into importer rows.
type sheetAdapter struct {
	p *sheet.Parser
}

func (a sheetAdapter) Parse(r io.Reader) ([]Row, error) {
	records, err := a.p.Parse(r)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{
			Number:      rec.Row,
			Category:    rec.Category,
			Amount:      rec.Amount,
			Description: rec.Description,
		}
	}

	return rows, nil
}
