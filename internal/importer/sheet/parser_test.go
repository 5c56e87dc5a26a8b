package sheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/importer/sheet"
)

func TestParser_Facturas(t *testing.T) {
	csv := `Facturas casa verano 2025;;
;;
Tipo;Cantidad;Descripción
gas;45,20;Naturgy marzo
Electricidad;1.041,18;Iberdrola
internet;30;
`

	recs, err := sheet.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "gas", recs[0].Category)
	assert.Equal(t, "45.2", recs[0].Amount.String())
	assert.Equal(t, "Naturgy marzo", recs[0].Description)
	assert.Equal(t, 4, recs[0].Row)

	assert.Equal(t, "Electricidad", recs[1].Category)
	assert.Equal(t, "1041.18", recs[1].Amount.String())

	assert.Equal(t, "", recs[2].Description)
}

func TestParser_EnglishCommaDelimited(t *testing.T) {
	csv := "Description,Amount,Category\n" +
		"\"Gas, March\",12.50,gas\n" +
		"Router,\"1,200.00\",internet\n"

	recs, err := sheet.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Gas, March", recs[0].Description)
	assert.Equal(t, "12.5", recs[0].Amount.String())
	assert.Equal(t, "1200", recs[1].Amount.String())
	assert.Equal(t, "internet", recs[1].Category)
}

func TestParser_GastosWithoutCategory(t *testing.T) {
	csv := "CONCEPTO\tIMPORTE\nRecibo agua\t18,40\n"

	recs, err := sheet.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Empty(t, recs[0].Category)
	assert.Equal(t, "Recibo agua", recs[0].Description)
	assert.Equal(t, "18.4", recs[0].Amount.String())
}

func TestParser_Windows1252(t *testing.T) {
	utf8CSV := "Tipo;Cantidad;Descripción\nbasuras;12,00;Tasa año 2025\n"

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	recs, err := sheet.NewParser().Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, "Tasa año 2025", recs[0].Description)
}

func TestParser_SkipsBlankAndFooterRows(t *testing.T) {
	csv := `Tipo;Cantidad;Descripción
gas;10,00;a
;;
TOTAL;10,00;
`

	recs, err := sheet.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestParser_Errors(t *testing.T) {
	cases := []struct {
		name    string
		csv     string
		wantErr error
	}{
		{name: "Empty", csv: "", wantErr: sheet.ErrNoProfile},
		{name: "UnknownHeader", csv: "Fecha;Valor\n01/01;3\n", wantErr: sheet.ErrNoProfile},
		{name: "BadAmount", csv: "Tipo;Cantidad\ngas;doce\n", wantErr: expense.ErrInvalidAmount},
		{name: "NegativeAmount", csv: "Tipo;Cantidad\ngas;-4,00\n", wantErr: expense.ErrNegativeAmount},
		{name: "MissingAmount", csv: "Tipo;Cantidad\ngas;\n", wantErr: expense.ErrMissingAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sheet.NewParser().Parse(strings.NewReader(tc.csv))
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParser_ErrorNamesRow(t *testing.T) {
	_, err := sheet.NewParser().Parse(strings.NewReader("Tipo;Cantidad\ngas;1\ngas;x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestParser_HeaderOnly(t *testing.T) {
	recs, err := sheet.NewParser().Parse(strings.NewReader("Tipo;Cantidad;Descripción"))
	require.NoError(t, err)
	assert.Empty(t, recs)
}
