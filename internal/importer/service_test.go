package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/importer"
)

type suggesterFunc func(ctx context.Context, description string) (expense.Category, error)

func (f suggesterFunc) Suggest(ctx context.Context, description string) (expense.Category, error) {
	return f(ctx, description)
}

func TestService_Import(t *testing.T) {
	suggest := suggesterFunc(func(_ context.Context, d string) (expense.Category, error) {
		if strings.Contains(strings.ToLower(d), "naturgy") {
			return "gas", nil
		}

		return "", nil
	})

	svc := importer.NewService(expense.DefaultCatalog(), suggest)

	params, err := svc.Import(context.Background(), importer.FormatSheet, strings.NewReader(
		"Tipo;Cantidad;Descripción\nELECTRICIDAD;55,35;Iberdrola\n;20,00;Naturgy abril\n"))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, expense.Category("electricidad"), params[0].Category)
	assert.Equal(t, "55.35", params[0].Amount.String())
	assert.Equal(t, expense.Category("gas"), params[1].Category)
	assert.Equal(t, "Naturgy abril", params[1].Description)
}

func TestService_Import_Unresolved(t *testing.T) {
	cases := []struct {
		name      string
		csv       string
		suggester importer.Suggester
		wantErr   error
	}{
		{
			name:    "UnknownCategory",
			csv:     "Tipo;Cantidad\nagua;10\n",
			wantErr: expense.ErrUnknownCategory,
		},
		{
			name:    "NoCategoryNoSuggester",
			csv:     "Concepto;Importe\nRecibo;10\n",
			wantErr: expense.ErrMissingCategory,
		},
		{
			name: "SuggesterFails",
			csv:  "Concepto;Importe\nRecibo;10\n",
			suggester: suggesterFunc(func(context.Context, string) (expense.Category, error) {
				return "", errors.New("db down")
			}),
			wantErr: expense.ErrMissingCategory,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := importer.NewService(expense.DefaultCatalog(), tc.suggester)

			_, err := svc.Import(context.Background(), "", strings.NewReader(tc.csv))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.True(t, expense.IsValidation(err))
			assert.Contains(t, err.Error(), "row 2")
		})
	}
}

func TestService_Import_UnknownFormat(t *testing.T) {
	svc := importer.NewService(expense.DefaultCatalog(), nil)

	_, err := svc.Import(context.Background(), "xlsx", strings.NewReader(""))
	assert.Error(t, err)
}
