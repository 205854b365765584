// Package term computes contract expiration dates from a start date and a
// duration expressed as an amount of days, months or years.
package term

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Unit is the unit of a term length.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitMonths Unit = "months"
	UnitYears  Unit = "years"
)

var (
	ErrNonPositive = errors.New("term amount must be positive")
	ErrUnknownUnit = errors.New("unknown term unit")
)

// Term is a contract duration such as "6 months".
type Term struct {
	Amount int  `json:"amount"`
	Unit   Unit `json:"unit"`
}

// Validate rejects zero or negative amounts and unknown units.
func (t Term) Validate() error {
	if t.Amount <= 0 {
		return ErrNonPositive
	}

	switch t.Unit {
	case UnitDays, UnitMonths, UnitYears:
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownUnit, t.Unit)
}

// Label renders the term for display, e.g. "6 meses" or "1 año".
func (t Term) Label() string {
	var singular, plural string

	switch t.Unit {
	case UnitDays:
		singular, plural = "día", "días"
	case UnitMonths:
		singular, plural = "mes", "meses"
	case UnitYears:
		singular, plural = "año", "años"
	default:
		return fmt.Sprintf("%d %s", t.Amount, t.Unit)
	}

	if t.Amount == 1 {
		return "1 " + singular
	}

	return fmt.Sprintf("%d %s", t.Amount, plural)
}

func (t Term) String() string { return t.Label() }

// Compute returns start advanced by t. It returns nil when either input is nil.
func Compute(start *time.Time, t *Term) *time.Time {
	if start == nil || t == nil {
		return nil
	}

	end := advance(*start, *t)

	return &end
}

// Extend adds extra to the current expiration. Extensions compound: they are
// applied to whatever the expiration is now, not to the original start date.
func Extend(current *time.Time, extra *Term) *time.Time {
	if current == nil {
		return nil
	}

	if extra == nil {
		c := *current
		return &c
	}

	end := advance(*current, *extra)

	return &end
}

// Date returns the calendar day t falls on in its own zone, as UTC midnight.
// Calendar dates (received, expiration, DATE columns) are always carried in
// this form.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from a to b, reading each on its own
// zone's calendar. The result is negative when b falls before a.
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}

func advance(start time.Time, t Term) time.Time {
	switch t.Unit {
	case UnitDays:
		return start.AddDate(0, 0, t.Amount)
	case UnitMonths:
		return addMonths(start, t.Amount)
	case UnitYears:
		return addMonths(start, t.Amount*12)
	}

	return start
}

// addMonths clamps to the last day of the target month, so Jan 31 + 1 month
// is Feb 28 (or 29) rather than overflowing into March.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())

	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}

	return first.AddDate(0, 0, d-1)
}

// Parse reads terms written as "6 meses", "6_meses", "6 months", "1 año" or
// the short forms "15d", "6m", "2y".
func Parse(s string) (Term, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Term{}, errors.New("empty term")
	}

	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if i <= 0 {
		return Term{}, fmt.Errorf("invalid term %q", s)
	}

	amount, err := strconv.Atoi(s[:i])
	if err != nil {
		return Term{}, fmt.Errorf("invalid term amount %q: %w", s[:i], err)
	}

	word := strings.Trim(s[i:], " _-")

	var unit Unit

	switch word {
	case "d", "dia", "día", "dias", "días", "day", "days":
		unit = UnitDays
	case "m", "mes", "meses", "month", "months":
		unit = UnitMonths
	case "a", "y", "año", "años", "ano", "anos", "year", "years":
		unit = UnitYears
	default:
		return Term{}, fmt.Errorf("%w: %q", ErrUnknownUnit, word)
	}

	t := Term{Amount: amount, Unit: unit}
	if err := t.Validate(); err != nil {
		return Term{}, err
	}

	return t, nil
}
