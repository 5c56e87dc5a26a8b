// Package sheet reads bills from spreadsheet CSV exports, detecting the layout from
// the header row and the delimiter from the first layout that matches.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	enc "github.com/MrJamesThe3rd/casa/internal/encoding"
	"github.com/MrJamesThe3rd/casa/internal/expense"
)

var ErrNoProfile = errors.New("no matching bills layout found")

// Record is a parsed data row. Row counts non-blank records from 1, header included.
type Record struct {
	Row         int
	Category    string
	Amount      decimal.Decimal
	Description string
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Record, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	// Casers keep state, so each parse gets its own.
	sc := &scan{fold: cases.Fold()}

	for _, comma := range delimiters {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := sc.detectProfile(rows)
		if profile == nil {
			continue
		}

		return sc.parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("%w: expected Tipo/Cantidad, Category/Amount or Concepto/Importe columns", ErrNoProfile)
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps folded header names to their position.
type colIndex map[string]int

type scan struct {
	fold cases.Caser
}

func (p *scan) key(s string) string {
	return p.fold.String(strings.TrimSpace(s))
}

func (p *scan) detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := p.key(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if p.matches(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func (p *scan) matches(pr *Profile, cols colIndex) bool {
	for _, name := range pr.requiredCols() {
		if _, ok := cols[p.key(name)]; !ok {
			return false
		}
	}

	return true
}

func (p *scan) index(cols colIndex, name string) int {
	if name == "" {
		return -1
	}

	if i, ok := cols[p.key(name)]; ok {
		return i
	}

	return -1
}

// parseRows reads data rows below the header. Blank rows and total footers are skipped.
func (p *scan) parseRows(pr *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Record, error) {
	catIdx := p.index(cols, pr.CategoryCol)
	amountIdx := p.index(cols, pr.AmountCol)
	descIdx := p.index(cols, pr.DescCol)

	var records []Record

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		if p.isFooter(row) {
			continue
		}

		category := cellValue(row, catIdx)
		desc := cellValue(row, descIdx)

		raw := cellValue(row, amountIdx)
		if category == "" && desc == "" && raw == "" {
			continue
		}

		amount, err := expense.ParseAmount(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		records = append(records, Record{
			Row:         rowNum,
			Category:    category,
			Amount:      amount,
			Description: desc,
		})
	}

	return records, nil
}

func (p *scan) isFooter(row []string) bool {
	for _, cell := range row {
		if k := p.key(cell); k != "" {
			return k == "total" || strings.HasPrefix(k, "total ") || strings.HasPrefix(k, "gran total")
		}
	}

	return true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
