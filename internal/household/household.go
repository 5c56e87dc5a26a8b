// Package household describes who lived in the house and when.
package household

import (
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/period"
)

var (
	ErrMissingName       = errors.New("missing resident name")
	ErrDuplicateResident = errors.New("duplicate resident")
	ErrUnknownKey        = errors.New("unknown configuration key")
)

type ResidentName string

func (n ResidentName) String() string { return string(n) }

type Resident struct {
	Name   ResidentName  `json:"name"`
	Period period.Period `json:"period"`
	// Exempt lists categories the resident does not pay for.
	Exempt []expense.Category `json:"exempt,omitempty"`
}

func (r Resident) IsExempt(c expense.Category) bool {
	for _, e := range r.Exempt {
		if e == c {
			return true
		}
	}

	return false
}

// Household is the static configuration the split is computed from.
type Household struct {
	Name       string
	Period     period.Period
	Residents  []Resident
	Categories expense.Catalog
}

// Occupancy maps each resident to the days they spent in the house.
type Occupancy map[ResidentName]int

// Validate checks the reference period, every resident's period, unique names and
// that exemptions refer to known categories.
func (h *Household) Validate() error {
	if len(h.Categories) == 0 {
		return expense.ErrEmptyCatalog
	}

	if err := h.Period.Validate(); err != nil {
		return fmt.Errorf("reference period: %w", err)
	}

	seen := make(map[ResidentName]struct{}, len(h.Residents))

	for i, r := range h.Residents {
		if r.Name == "" {
			return fmt.Errorf("resident %d: %w", i+1, ErrMissingName)
		}

		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("resident %q: %w", r.Name, ErrDuplicateResident)
		}

		seen[r.Name] = struct{}{}

		if err := r.Period.Validate(); err != nil {
			return fmt.Errorf("resident %q: %w", r.Name, err)
		}

		for _, c := range r.Exempt {
			if !h.Categories.Contains(c) {
				return fmt.Errorf("resident %q exempt: %w", r.Name,
					&expense.FieldError{Field: "category", Value: string(c), Err: expense.ErrUnknownCategory})
			}
		}
	}

	return nil
}

// Occupancy counts, for every resident, the days shared between their stay and the
// reference period. Residents who never overlap it map to 0.
func (h *Household) Occupancy() Occupancy {
	occ := make(Occupancy, len(h.Residents))
	for _, r := range h.Residents {
		occ[r.Name] = period.Overlap(r.Period, h.Period)
	}

	return occ
}

// ReferenceDays is the length of the reference period.
func (h *Household) ReferenceDays() int {
	return h.Period.Days()
}

func (h *Household) Resident(name ResidentName) (Resident, bool) {
	for _, r := range h.Residents {
		if r.Name == name {
			return r, true
		}
	}

	return Resident{}, false
}
