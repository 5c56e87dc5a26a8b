package proration_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/household"
	"github.com/MrJamesThe3rd/casa/internal/period"
	"github.com/MrJamesThe3rd/casa/internal/proration"
)

const tolerance = 1e-9

func mustPeriod(t *testing.T, start, end string) period.Period {
	t.Helper()

	s, err := period.ParseDate(start)
	require.NoError(t, err)

	e, err := period.ParseDate(end)
	require.NoError(t, err)

	return period.New(s, e)
}

func house(t *testing.T, residents ...household.Resident) *household.Household {
	t.Helper()

	h := &household.Household{
		Name:       "test",
		Period:     mustPeriod(t, "2025-03-15", "2025-09-06"),
		Categories: expense.DefaultCatalog(),
		Residents:  residents,
	}
	require.NoError(t, h.Validate())

	return h
}

func totals(gas, luz, basuras, internet string) expense.Totals {
	return expense.Totals{
		"gas":          decimal.RequireFromString(gas),
		"electricidad": decimal.RequireFromString(luz),
		"basuras":      decimal.RequireFromString(basuras),
		"internet":     decimal.RequireFromString(internet),
	}
}

func TestAllocate_TwoResidents(t *testing.T) {
	h := house(t,
		household.Resident{Name: "A", Period: mustPeriod(t, "2025-03-15", "2025-08-24")},
		household.Resident{Name: "B", Period: mustPeriod(t, "2025-08-24", "2025-09-06")},
	)

	res := proration.Allocate(h, totals("0", "0", "0", "100"))

	require.Len(t, res.Residents, 2)
	assert.Equal(t, 176, res.ReferenceDays)
	assert.Empty(t, res.Unallocated)

	a, ok := res.ByName("A")
	require.True(t, ok)
	b, ok := res.ByName("B")
	require.True(t, ok)

	assert.Equal(t, 163, a.Days)
	assert.Equal(t, 14, b.Days)
	assert.Equal(t, "92.09", a.Total.StringFixed(2))
	assert.Equal(t, "7.91", b.Total.StringFixed(2))
	assert.Equal(t, "92.09", a.Categories["internet"].Amount.StringFixed(2))
	assert.Equal(t, "7.91", b.Categories["internet"].Amount.StringFixed(2))
	assert.InDelta(t, 163.0/176.0, a.Proportion, tolerance)
	assert.InDelta(t, 14.0/176.0, b.Proportion, tolerance)

	// Weights depend on occupancy only, so a zero-total category still carries them.
	for _, c := range []expense.Category{"gas", "internet"} {
		assert.InDelta(t, 163.0/177.0, a.Categories[c].Weight, tolerance, "weight of A in %s", c)
		assert.InDelta(t, 14.0/177.0, b.Categories[c].Weight, tolerance, "weight of B in %s", c)
	}

	for _, r := range res.Residents {
		assert.True(t, r.Categories["gas"].Amount.IsZero())
	}
}

func TestAllocate_Conservation(t *testing.T) {
	h, err := household.Load("../household/testdata/casa.toml")
	require.NoError(t, err)

	sums := totals("312.47", "1041.18", "88.00", "0.01")
	res := proration.Allocate(h, sums)

	for _, c := range h.Categories {
		var (
			amount decimal.Decimal
			weight float64
		)

		for _, r := range res.Residents {
			amount = amount.Add(r.Categories[c].Amount)
			weight += r.Categories[c].Weight
		}

		diff, _ := amount.Sub(sums[c]).Abs().Float64()
		assert.Less(t, diff, tolerance, "category %s is not conserved", c)
		assert.InDelta(t, 1.0, weight, tolerance, "weights of %s", c)
	}

	grand := decimal.Zero
	for _, r := range res.Residents {
		perCategory := decimal.Zero
		for _, c := range h.Categories {
			perCategory = perCategory.Add(r.Categories[c].Amount)
		}

		assert.True(t, r.Total.Equal(perCategory), "resident %s total", r.Name)
		grand = grand.Add(r.Total)
	}

	diff, _ := grand.Sub(sums.Grand()).Abs().Float64()
	assert.Less(t, diff, tolerance)
}

func TestAllocate_ZeroOccupancyResidentStillListed(t *testing.T) {
	h, err := household.Load("../household/testdata/casa.toml")
	require.NoError(t, err)

	res := proration.Allocate(h, totals("50", "50", "50", "50"))

	v, ok := res.ByName("Visita")
	require.True(t, ok)
	assert.Zero(t, v.Days)
	assert.Zero(t, v.Proportion)
	assert.True(t, v.Total.IsZero())

	for _, c := range h.Categories {
		assert.True(t, v.Categories[c].Amount.IsZero())
		assert.Zero(t, v.Categories[c].Weight)
	}
}

func TestAllocate_Exemption(t *testing.T) {
	h := house(t,
		household.Resident{Name: "A", Period: mustPeriod(t, "2025-03-15", "2025-09-06")},
		household.Resident{Name: "B", Period: mustPeriod(t, "2025-03-15", "2025-09-06"), Exempt: []expense.Category{"internet"}},
	)

	res := proration.Allocate(h, totals("10", "0", "0", "30"))

	a, _ := res.ByName("A")
	b, _ := res.ByName("B")

	assert.Equal(t, "5", a.Categories["gas"].Amount.String())
	assert.Equal(t, "5", b.Categories["gas"].Amount.String())
	assert.Equal(t, "30", a.Categories["internet"].Amount.String())
	assert.InDelta(t, 1.0, a.Categories["internet"].Weight, tolerance)
	assert.True(t, b.Categories["internet"].Amount.IsZero())
	assert.Equal(t, "35", a.Total.String())
	assert.Equal(t, "5", b.Total.String())
}

func TestAllocate_Degenerate(t *testing.T) {
	cases := []struct {
		name      string
		residents []household.Resident
	}{
		{name: "NoResidents"},
		{
			name: "NobodyOverlaps",
			residents: []household.Resident{
				{Name: "X", Period: mustPeriod(t, "2024-01-01", "2024-12-31")},
			},
		},
		{
			name: "EveryoneExempt",
			residents: []household.Resident{
				{Name: "X", Period: mustPeriod(t, "2025-03-15", "2025-09-06"), Exempt: expense.DefaultCatalog()},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := house(t, tc.residents...)

			var res *proration.Result

			require.NotPanics(t, func() {
				res = proration.Allocate(h, totals("100", "0", "25.5", "0"))
			})

			assert.Equal(t, []expense.Category{"gas", "basuras"}, res.Unallocated)
			assert.Equal(t, "125.5", res.UnallocatedTotal().String())

			for _, r := range res.Residents {
				assert.True(t, r.Total.IsZero())

				for _, c := range h.Categories {
					s := r.Categories[c]
					assert.True(t, s.Amount.IsZero())
					assert.Zero(t, s.Weight)
					assert.False(t, math.IsNaN(s.Weight))
				}
			}
		})
	}
}

func TestAllocate_Idempotent(t *testing.T) {
	h, err := household.Load("../household/testdata/casa.toml")
	require.NoError(t, err)

	sums := totals("1", "2", "3", "4")

	assert.Equal(t, proration.Allocate(h, sums), proration.Allocate(h, sums))
}

func TestAllocate_MissingTotalsAreZero(t *testing.T) {
	h := house(t, household.Resident{Name: "A", Period: mustPeriod(t, "2025-03-15", "2025-09-06")})

	res := proration.Allocate(h, expense.Totals{})

	require.Len(t, res.Totals, 4)
	assert.True(t, res.Residents[0].Total.IsZero())
	assert.Empty(t, res.Unallocated)
}
