package expense

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places an amount may carry. It matches the
// NUMERIC(14,4) column so every backend stores the same value.
const AmountScale = 4

func tooPrecise(d decimal.Decimal) bool {
	return !d.Equal(d.Round(AmountScale))
}

// ParseAmount reads a currency amount typed by a user. Both "12.50" and "12,50" are
// accepted, as are grouped forms like "1.234,56" and "1,234.56".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, &FieldError{Field: "amount", Err: ErrMissingAmount}
	}

	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSuffix(s, "€"), "€"))

	// decimal accepts exponents; "1e3" is a typo, not a thousand.
	if strings.ContainsAny(clean, "eE") {
		return decimal.Zero, &FieldError{Field: "amount", Value: s, Err: ErrInvalidAmount}
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastComma > lastDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case lastDot > lastComma:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, &FieldError{Field: "amount", Value: s, Err: ErrInvalidAmount}
	}

	if d.IsNegative() {
		return decimal.Zero, &FieldError{Field: "amount", Value: s, Err: ErrNegativeAmount}
	}

	if tooPrecise(d) {
		return decimal.Zero, &FieldError{Field: "amount", Value: s, Err: ErrInvalidAmount}
	}

	return d, nil
}

// ParseParams validates raw form input against the catalog.
func ParseParams(catalog Catalog, category, amount, description string) (CreateParams, error) {
	cat, err := catalog.Parse(category)
	if err != nil {
		return CreateParams{}, err
	}

	amt, err := ParseAmount(amount)
	if err != nil {
		return CreateParams{}, err
	}

	return CreateParams{
		Category:    cat,
		Amount:      amt,
		Description: strings.TrimSpace(description),
	}, nil
}

// Validate checks params that did not come through ParseParams.
func (p CreateParams) Validate(catalog Catalog) error {
	if p.Category == "" {
		return &FieldError{Field: "category", Err: ErrMissingCategory}
	}

	if !catalog.Contains(p.Category) {
		return &FieldError{Field: "category", Value: string(p.Category), Err: ErrUnknownCategory}
	}

	if p.Amount.IsNegative() {
		return &FieldError{Field: "amount", Value: p.Amount.String(), Err: ErrNegativeAmount}
	}

	if tooPrecise(p.Amount) {
		return &FieldError{Field: "amount", Value: p.Amount.String(), Err: ErrInvalidAmount}
	}

	return nil
}
