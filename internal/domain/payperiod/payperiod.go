// Package payperiod maps calendar dates onto semi-monthly pay periods.
// The first half of a month runs from the 1st through the 15th, the second
// from the 16th through the last day. Months are held zero-based internally
// and one-based in the persisted key format "YYYY-MM-P".
package payperiod

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Period struct {
	Year  int
	Month int // zero-based, 0 = January
	Half  int // 1 or 2
}

// FromDate buckets a date into its pay period.
func FromDate(date time.Time) Period {
	half := 1
	if date.Day() > 15 {
		half = 2
	}
	return Period{
		Year:  date.Year(),
		Month: int(date.Month()) - 1,
		Half:  half,
	}
}

// Key returns the stable string form, e.g. "2024-03-2".
func (p Period) Key() string {
	return fmt.Sprintf("%d-%02d-%d", p.Year, p.Month+1, p.Half)
}

// ParseKey is the inverse of Key. It rejects malformed keys rather than
// guessing: wrong segment count, non-numeric segments, month outside 1-12
// and halves outside {1,2} are all errors.
func ParseKey(key string) (Period, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return Period{}, fmt.Errorf("invalid pay period key %q: expected YYYY-MM-P", key)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("invalid pay period key %q: year is not numeric", key)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("invalid pay period key %q: month is not numeric", key)
	}
	half, err := strconv.Atoi(parts[2])
	if err != nil {
		return Period{}, fmt.Errorf("invalid pay period key %q: period is not numeric", key)
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid pay period key %q: month must be 1-12", key)
	}
	if half != 1 && half != 2 {
		return Period{}, fmt.Errorf("invalid pay period key %q: period must be 1 or 2", key)
	}
	return Period{Year: year, Month: month - 1, Half: half}, nil
}

// Start returns the first day covered by the period.
func (p Period) Start() time.Time {
	day := 1
	if p.Half == 2 {
		day = 16
	}
	return time.Date(p.Year, time.Month(p.Month+1), day, 0, 0, 0, 0, time.UTC)
}

// End returns the last day covered by the period.
func (p Period) End() time.Time {
	if p.Half == 1 {
		return time.Date(p.Year, time.Month(p.Month+1), 15, 0, 0, 0, 0, time.UTC)
	}
	// day 0 of the next month is the last day of this one
	return time.Date(p.Year, time.Month(p.Month+2), 0, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether a worked date falls inside the period range.
func (p Period) Contains(date time.Time) bool {
	return FromDate(date) == p
}

// Label renders the human form, e.g. "Mar 1-15, 2024" or "Feb 16-29, 2024".
func (p Period) Label() string {
	monthName := p.Start().Format("Jan")
	if p.Half == 1 {
		return fmt.Sprintf("%s 1-15, %d", monthName, p.Year)
	}
	return fmt.Sprintf("%s 16-%d, %d", monthName, p.End().Day(), p.Year)
}
