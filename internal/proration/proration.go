// Package proration splits category totals among residents in proportion to the
// days each one spent in the house.
package proration

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/household"
)

// Share is one resident's part of a single category.
type Share struct {
	Amount decimal.Decimal `json:"amount"`
	// Weight is the fraction of the category's distribution base held by the resident.
	Weight float64 `json:"weight"`
}

type Allocation struct {
	Name       household.ResidentName     `json:"name"`
	Days       int                        `json:"days"`
	Proportion float64                    `json:"proportion"`
	Total      decimal.Decimal            `json:"total"`
	Categories map[expense.Category]Share `json:"categories"`
}

type Result struct {
	Catalog       expense.Catalog `json:"catalog"`
	Totals        expense.Totals  `json:"totals"`
	ReferenceDays int             `json:"reference_days"`
	Residents     []Allocation    `json:"residents"`
	// Unallocated lists categories with money but nobody to charge it to.
	Unallocated []expense.Category `json:"unallocated,omitempty"`
}

// Allocate distributes totals over the residents of h. A resident weighs in on a
// category when they have at least one day of occupancy and are not exempt from it.
// A category whose base is empty is split as all zeros and, if its total is positive,
// listed in Result.Unallocated.
func Allocate(h *household.Household, totals expense.Totals) *Result {
	occ := h.Occupancy()
	refDays := h.ReferenceDays()

	res := &Result{
		Catalog:       h.Categories,
		Totals:        make(expense.Totals, len(h.Categories)),
		ReferenceDays: refDays,
		Residents:     make([]Allocation, len(h.Residents)),
	}

	for i, r := range h.Residents {
		days := occ[r.Name]

		var proportion float64
		if refDays > 0 {
			proportion = float64(days) / float64(refDays)
		}

		res.Residents[i] = Allocation{
			Name:       r.Name,
			Days:       days,
			Proportion: proportion,
			Total:      decimal.Zero,
			Categories: make(map[expense.Category]Share, len(h.Categories)),
		}
	}

	for _, c := range h.Categories {
		total := totals[c]
		res.Totals[c] = total

		totalWeight := 0
		for _, r := range h.Residents {
			if occ[r.Name] > 0 && !r.IsExempt(c) {
				totalWeight += occ[r.Name]
			}
		}

		if totalWeight == 0 {
			for i := range res.Residents {
				res.Residents[i].Categories[c] = Share{Amount: decimal.Zero}
			}

			if total.IsPositive() {
				res.Unallocated = append(res.Unallocated, c)
			}

			continue
		}

		weight := decimal.NewFromInt(int64(totalWeight))

		for i, r := range h.Residents {
			days := occ[r.Name]
			if days == 0 || r.IsExempt(c) {
				res.Residents[i].Categories[c] = Share{Amount: decimal.Zero}
				continue
			}

			amount := total.Mul(decimal.NewFromInt(int64(days))).Div(weight)

			res.Residents[i].Categories[c] = Share{
				Amount: amount,
				Weight: float64(days) / float64(totalWeight),
			}
			res.Residents[i].Total = res.Residents[i].Total.Add(amount)
		}
	}

	return res
}

// ByName returns the allocation for a resident.
func (r *Result) ByName(name household.ResidentName) (Allocation, bool) {
	for _, a := range r.Residents {
		if a.Name == name {
			return a, true
		}
	}

	return Allocation{}, false
}

// UnallocatedTotal sums the categories nobody could be charged for.
func (r *Result) UnallocatedTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range r.Unallocated {
		sum = sum.Add(r.Totals[c])
	}

	return sum
}
