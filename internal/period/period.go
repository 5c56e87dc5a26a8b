// Package period implements calendar-date arithmetic over inclusive date ranges.
//
// Dates carry no time of day: every value is normalised to midnight UTC, so day counts
// do not depend on the local timezone or on daylight-saving transitions.
package period

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid period")

const day = 24 * time.Hour

// Date is a calendar date.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, d int) Date {
	return Date{t: time.Date(year, month, d, 0, 0, 0, 0, time.UTC)}
}

// FromTime keeps the calendar day of t as seen in t's own location.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return FromTime(t), nil
}

func (d Date) Time() time.Time { return d.t }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) After(o Date) bool { return d.t.After(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.t.Format(time.DateOnly)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// UnmarshalTOML accepts both quoted dates and TOML local dates.
func (d *Date) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		return d.UnmarshalText([]byte(val))
	case time.Time:
		*d = FromTime(val)
		return nil
	}

	return fmt.Errorf("unsupported date value %v (%T)", v, v)
}

// DaysBetween returns the number of calendar days in the closed interval [start, end].
// Callers must ensure end is not before start; Overlap clamps for them.
func DaysBetween(start, end Date) int {
	return int(end.t.Sub(start.t)/day) + 1
}

// Period is an inclusive range of calendar days.
type Period struct {
	Start Date `toml:"start" json:"start"`
	End   Date `toml:"end" json:"end"`
}

func New(start, end Date) Period {
	return Period{Start: start, End: end}
}

// Validate reports whether the period has both bounds and does not end before it starts.
func (p Period) Validate() error {
	if p.Start.IsZero() {
		return fmt.Errorf("missing start date: %w", ErrInvalidPeriod)
	}

	if p.End.IsZero() {
		return fmt.Errorf("missing end date: %w", ErrInvalidPeriod)
	}

	if p.End.Before(p.Start) {
		return fmt.Errorf("end %s before start %s: %w", p.End, p.Start, ErrInvalidPeriod)
	}

	return nil
}

// Days is the inclusive length of a valid period.
func (p Period) Days() int {
	return DaysBetween(p.Start, p.End)
}

func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// Intersect returns the shared days of a and b. ok is false when they are disjoint.
func Intersect(a, b Period) (Period, bool) {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}

	end := a.End
	if b.End.Before(end) {
		end = b.End
	}

	if start.After(end) {
		return Period{}, false
	}

	return Period{Start: start, End: end}, true
}

// Overlap counts the days a and b have in common, 0 when they do not intersect.
func Overlap(a, b Period) int {
	shared, ok := Intersect(a, b)
	if !ok {
		return 0
	}

	return shared.Days()
}
