// Package calendar derives the week and month calendar views from a flat
// list of date-ranged bookings.
//
// Every date that is compared is a Date: a fixed-width YYYY-MM-DD string.
// Comparisons are plain string comparisons, which keeps calendar-day
// semantics independent of the machine timezone.
package calendar

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

const (
	WeekLength    = 7
	MonthGridSize = 42
)

// Date is a canonical YYYY-MM-DD calendar day.
type Date string

func (d Date) String() string {
	return string(d)
}

// Time returns midnight of d in time.Local.
func (d Date) Time() (time.Time, error) {
	return ParseDate(string(d))
}

// AddDays shifts d by n calendar days. An unparsable d is returned unchanged.
func (d Date) AddDays(n int) Date {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return ToDate(AddDays(t, n))
}

// StartOfWeek returns the Monday on or before t, at midnight in t's location.
func StartOfWeek(t time.Time) time.Time {
	d := midnight(t)
	diff := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -diff)
}

func AddDays(t time.Time, n int) time.Time {
	return midnight(t).AddDate(0, 0, n)
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths pins to the first of the month before shifting, so Jan 31 + 1
// month is Feb 1 and never rolls over into March.
func AddMonths(t time.Time, n int) time.Time {
	return StartOfMonth(t).AddDate(0, n, 0)
}

// ToDate formats t using its own calendar fields. No UTC conversion happens.
func ToDate(t time.Time) Date {
	return Date(fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day()))
}

// ParseDate parses a strict YYYY-MM-DD string to midnight in time.Local.
func ParseDate(s string) (time.Time, error) {
	const op = "calendar.ParseDate"

	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}

func WeekDays(weekStart time.Time) []time.Time {
	return daysFrom(weekStart, WeekLength)
}

// MonthGridDays returns six full Monday-start weeks covering the month of monthStart.
func MonthGridDays(monthStart time.Time) []time.Time {
	return daysFrom(StartOfWeek(StartOfMonth(monthStart)), MonthGridSize)
}

func Keys(days []time.Time) []Date {
	keys := make([]Date, len(days))
	for i, d := range days {
		keys[i] = ToDate(d)
	}
	return keys
}

// Normalize is the single boundary for date values coming from the store.
// Anything after the first 10 characters (a time or timezone suffix) is
// dropped. Empty or malformed values report ok=false and must be treated as
// absent.
func Normalize(raw string) (Date, bool) {
	if raw == "" {
		return "", false
	}
	if len(raw) > len(dateLayout) {
		raw = raw[:len(dateLayout)]
	}
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return "", false
	}
	return Date(raw), true
}

// NormalizePtr is Normalize for nullable columns.
func NormalizePtr(raw *string) (Date, bool) {
	if raw == nil {
		return "", false
	}
	return Normalize(*raw)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysFrom(start time.Time, n int) []time.Time {
	days := make([]time.Time, n)
	for i := range days {
		days[i] = AddDays(start, i)
	}
	return days
}
