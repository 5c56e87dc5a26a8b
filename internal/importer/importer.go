package importer

import (
	"io"

	"github.com/shopspring/decimal"
)

// Format names a spreadsheet layout the importer understands.
type Format string

const (
	FormatSheet Format = "sheet"
)

// Row is one bill read from a file. Category is the raw cell and may be empty.
// Number is the row position used in error messages.
type Row struct {
	Number      int
	Category    string
	Amount      decimal.Decimal
	Description string
}

type Importer interface {
	Parse(r io.Reader) ([]Row, error)
}
