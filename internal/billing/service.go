// Package billing ties stored expenses to the household configuration and produces
// the per-resident split on demand.
package billing

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/household"
	"github.com/MrJamesThe3rd/casa/internal/proration"
	"github.com/MrJamesThe3rd/casa/internal/report"
)

// Totaler supplies the current category totals. *expense.Service satisfies it.
type Totaler interface {
	Totals(ctx context.Context) (expense.Totals, error)
}

// Recorder is told how many categories were left unallocated by the last summary.
type Recorder interface {
	SetUnallocated(n int)
}

type Service struct {
	expenses  Totaler
	house     *household.Household
	formatter *report.Formatter
	recorder  Recorder
}

// NewService wires a billing service. recorder may be nil.
func NewService(expenses Totaler, house *household.Household, formatter *report.Formatter, recorder Recorder) *Service {
	return &Service{
		expenses:  expenses,
		house:     house,
		formatter: formatter,
		recorder:  recorder,
	}
}

func (s *Service) Household() *household.Household {
	return s.house
}

// Summary recomputes the split from a fresh snapshot of the expenses.
func (s *Service) Summary(ctx context.Context) (*proration.Result, error) {
	totals, err := s.expenses.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("computing totals: %w", err)
	}

	res := proration.Allocate(s.house, totals)

	for _, c := range res.Unallocated {
		slog.WarnContext(ctx, "category has no residents to charge",
			"category", c,
			"total", res.Totals[c].StringFixed(2))
	}

	if s.recorder != nil {
		s.recorder.SetUnallocated(len(res.Unallocated))
	}

	return res, nil
}

// Report writes the current split as a UTF-8 sheet.
func (s *Service) Report(ctx context.Context, w io.Writer) error {
	res, err := s.Summary(ctx)
	if err != nil {
		return err
	}

	return s.formatter.Write(w, res)
}

// Stay is one resident's occupancy within the reference period.
type Stay struct {
	Name       household.ResidentName `json:"name"`
	Start      string                 `json:"start"`
	End        string                 `json:"end"`
	Days       int                    `json:"days"`
	Proportion float64                `json:"proportion"`
}

// Occupancy lists residents in declared order with their counted days.
func (s *Service) Occupancy() []Stay {
	occ := s.house.Occupancy()
	ref := s.house.ReferenceDays()

	stays := make([]Stay, len(s.house.Residents))

	for i, r := range s.house.Residents {
		days := occ[r.Name]

		var p float64
		if ref > 0 {
			p = float64(days) / float64(ref)
		}

		stays[i] = Stay{
			Name:       r.Name,
			Start:      r.Period.Start.String(),
			End:        r.Period.End.String(),
			Days:       days,
			Proportion: p,
		}
	}

	return stays
}
