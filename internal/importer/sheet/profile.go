package sheet

// Profile describes the header layout of a bills spreadsheet.
// Adding a layout is adding a Profile to the profiles slice.
type Profile struct {
	Name        string
	CategoryCol string // empty when the layout has no category column
	AmountCol   string
	DescCol     string
}

// requiredCols lists the headers that must be present. A layout without categories
// needs descriptions so rules can fill them in.
func (p Profile) requiredCols() []string {
	cols := []string{p.AmountCol}

	if p.CategoryCol != "" {
		cols = append(cols, p.CategoryCol)
	} else {
		cols = append(cols, p.DescCol)
	}

	return cols
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:        "facturas",
		CategoryCol: "Tipo",
		AmountCol:   "Cantidad",
		DescCol:     "Descripción",
	},
	{
		Name:        "bills",
		CategoryCol: "Category",
		AmountCol:   "Amount",
		DescCol:     "Description",
	},
	{
		Name:      "gastos",
		AmountCol: "Importe",
		DescCol:   "Concepto",
	},
}

var delimiters = []rune{';', ',', '\t'}
