package expense_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/casa/internal/expense"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "12.34", want: "12.34"},
		{in: "12,34", want: "12.34"},
		{in: " 7 ", want: "7"},
		{in: "0", want: "0"},
		{in: "1.234,56", want: "1234.56"},
		{in: "1,234.56", want: "1234.56"},
		{in: "€15,00", want: "15"},
		{in: "", wantErr: expense.ErrMissingAmount},
		{in: "abc", wantErr: expense.ErrInvalidAmount},
		{in: "-3", wantErr: expense.ErrNegativeAmount},
		{in: "12.3456", want: "12.3456"},
		{in: "12.50000", want: "12.5"},
		{in: "12.345678", wantErr: expense.ErrInvalidAmount},
		{in: "0,00001", wantErr: expense.ErrInvalidAmount},
		{in: "1e3", wantErr: expense.ErrInvalidAmount},
		{in: "2E-2", wantErr: expense.ErrInvalidAmount},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := expense.ParseAmount(tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.True(t, expense.IsValidation(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestParseParams(t *testing.T) {
	catalog := expense.DefaultCatalog()

	p, err := expense.ParseParams(catalog, " Internet ", "30", "  fibra  ")
	require.NoError(t, err)
	assert.Equal(t, expense.Category("internet"), p.Category)
	assert.Equal(t, "30", p.Amount.String())
	assert.Equal(t, "fibra", p.Description)

	_, err = expense.ParseParams(catalog, "", "30", "")
	assert.ErrorIs(t, err, expense.ErrMissingCategory)

	_, err = expense.ParseParams(catalog, "agua", "30", "")
	assert.ErrorIs(t, err, expense.ErrUnknownCategory)

	var fe *expense.FieldError

	_, err = expense.ParseParams(catalog, "gas", "", "")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "amount", fe.Field)
}

func TestCreateParams_Validate(t *testing.T) {
	catalog := expense.DefaultCatalog()

	ok := expense.CreateParams{Category: "gas", Amount: decimal.RequireFromString("10.1234")}
	assert.NoError(t, ok.Validate(catalog))

	precise := expense.CreateParams{Category: "gas", Amount: decimal.RequireFromString("10.12345")}
	assert.ErrorIs(t, precise.Validate(catalog), expense.ErrInvalidAmount)

	negative := expense.CreateParams{Category: "gas", Amount: decimal.NewFromInt(-1)}
	assert.ErrorIs(t, negative.Validate(catalog), expense.ErrNegativeAmount)
}

func TestNewCatalog(t *testing.T) {
	c, err := expense.NewCatalog("Gas", "agua ")
	require.NoError(t, err)
	assert.Equal(t, expense.Catalog{"gas", "agua"}, c)
	assert.True(t, c.Contains("agua"))
	assert.False(t, c.Contains("internet"))

	_, err = expense.NewCatalog()
	assert.ErrorIs(t, err, expense.ErrEmptyCatalog)

	_, err = expense.NewCatalog("gas", "GAS")
	assert.ErrorIs(t, err, expense.ErrDuplicateCategory)

	_, err = expense.NewCatalog("gas", " ")
	assert.ErrorIs(t, err, expense.ErrMissingCategory)
}
