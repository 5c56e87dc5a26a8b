package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single household bill. Records are never mutated after creation.
type Expense struct {
	ID          int64 // Assigned by the repository, monotonically increasing
	Category    Category
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// CreateParams is the user-supplied part of an expense.
type CreateParams struct {
	Category    Category
	Amount      decimal.Decimal
	Description string
}
