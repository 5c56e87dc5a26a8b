// Package report renders an allocation as the delimited sheet residents are sent.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/casa/internal/proration"
)

const (
	DefaultCurrency = "€"
	Filename        = "facturas_resultado.csv"
)

// Formatter writes reports. The zero value uses the euro sign and commas.
type Formatter struct {
	Currency string
	Comma    rune
}

func NewFormatter(currency string) *Formatter {
	return &Formatter{Currency: currency}
}

func (f *Formatter) money(d decimal.Decimal) string {
	cur := f.Currency
	if cur == "" {
		cur = DefaultCurrency
	}

	return cur + d.StringFixed(2)
}

func percent(p float64) string {
	return strconv.FormatFloat(p*100, 'f', 1, 64) + "%"
}

// Write emits one row per resident, the per-category totals and the grand total.
// Categories nobody could be charged for follow as SIN ASIGNAR rows.
func (f *Formatter) Write(w io.Writer, res *proration.Result) error {
	cw := csv.NewWriter(w)
	if f.Comma != 0 {
		cw.Comma = f.Comma
	}

	title := cases.Title(language.Spanish)

	header := []string{"Persona", "Total a Pagar", "Días en Casa", "Porcentaje"}
	for _, c := range res.Catalog {
		header = append(header, title.String(string(c)))
	}

	rows := [][]string{header}

	for _, a := range res.Residents {
		row := []string{
			string(a.Name),
			f.money(a.Total),
			strconv.Itoa(a.Days),
			percent(a.Proportion),
		}

		for _, c := range res.Catalog {
			row = append(row, f.money(a.Categories[c].Amount))
		}

		rows = append(rows, row)
	}

	rows = append(rows,
		[]string{},
		[]string{"TOTALES POR TIPO DE FACTURA"},
		[]string{"Tipo", "Total Acumulado"},
	)

	grand := decimal.Zero
	for _, c := range res.Catalog {
		total := res.Totals[c]
		grand = grand.Add(total)
		rows = append(rows, []string{string(c), f.money(total)})
	}

	rows = append(rows, []string{}, []string{"GRAN TOTAL", f.money(grand)})

	if len(res.Unallocated) > 0 {
		rows = append(rows, []string{})
		for _, c := range res.Unallocated {
			rows = append(rows, []string{"SIN ASIGNAR", string(c), f.money(res.Totals[c])})
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// Format returns the report as a string.
func (f *Formatter) Format(res *proration.Result) (string, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf, res); err != nil {
		return "", err
	}

	return buf.String(), nil
}
