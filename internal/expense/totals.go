package expense

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Totals maps each category to the summed amount of its expenses.
type Totals map[Category]decimal.Decimal

// Aggregate sums records per category. Every catalog category is present in the
// result, zero when it has no records. A record outside the catalog is an error.
func Aggregate(records []*Expense, catalog Catalog) (Totals, error) {
	totals := make(Totals, len(catalog))
	for _, c := range catalog {
		totals[c] = decimal.Zero
	}

	for _, r := range records {
		sum, ok := totals[r.Category]
		if !ok {
			return nil, fmt.Errorf("expense %d: %w", r.ID,
				&FieldError{Field: "category", Value: string(r.Category), Err: ErrUnknownCategory})
		}

		totals[r.Category] = sum.Add(r.Amount)
	}

	return totals, nil
}

// Grand is the sum of all category totals.
func (t Totals) Grand() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range t {
		sum = sum.Add(v)
	}

	return sum
}
