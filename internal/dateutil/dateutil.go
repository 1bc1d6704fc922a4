// Package dateutil provides pure date and hour helpers for the focusedtime app.
// Dates are passed around as YYYY-MM-DD strings and hours as ints 0-23,
// matching the persisted state format. All time-dependent functions take the
// reference time explicitly so callers control the clock.
package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the canonical date format used throughout the app.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return t, nil
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatReadableDate formats a date string for display, e.g. "Mon, Apr 14, 2025".
// Returns "Invalid Date" for unparseable input rather than erroring.
func FormatReadableDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return "Invalid Date"
	}
	return t.Format("Mon, Jan 2, 2006")
}

// FormatHour formats an hour-of-day as "HH:00".
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// DatesInRange enumerates every date in [start, end] inclusive.
// An unparseable or reversed range yields an empty slice, never an error:
// downstream consumers (derivation, metrics) degrade to empty/zero.
func DatesInRange(start, end string) []string {
	s, err := ParseDate(start)
	if err != nil {
		return nil
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil
	}
	if e.Before(s) {
		return nil
	}

	var dates []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, FormatDate(d))
	}
	return dates
}

// TotalPossibleHours returns the number of hours in the inclusive date range,
// or 0 for an invalid range.
func TotalPossibleHours(start, end string) int {
	s, err := ParseDate(start)
	if err != nil {
		return 0
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0
	}
	if e.Before(s) {
		return 0
	}
	days := int(e.Sub(s).Hours()/24) + 1
	return days * 24
}

// Weekday returns the day of week for a date string (0=Sunday .. 6=Saturday),
// and false if the date is unparseable.
func Weekday(date string) (int, bool) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, false
	}
	return int(t.Weekday()), true
}

// StartOfDay truncates a time to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeekMonday returns the Monday at or before t, truncated to midnight.
// Reports use Monday-start weeks.
func StartOfWeekMonday(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// HourStart returns the instant at which the given (date, hour) slot begins
// in the given location, and false if the date is unparseable or the hour is
// out of range.
func HourStart(date string, hour int, loc *time.Location) (time.Time, bool) {
	if hour < 0 || hour > 23 {
		return time.Time{}, false
	}
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, loc), true
}

// IsHourPast reports whether the (date, hour) slot has fully elapsed at now.
func IsHourPast(date string, hour int, now time.Time) bool {
	start, ok := HourStart(date, hour, now.Location())
	if !ok {
		return false
	}
	return !now.Before(start.Add(time.Hour))
}

// IsHourCurrent reports whether now falls inside the (date, hour) slot.
func IsHourCurrent(date string, hour int, now time.Time) bool {
	start, ok := HourStart(date, hour, now.Location())
	if !ok {
		return false
	}
	return !now.Before(start) && now.Before(start.Add(time.Hour))
}

// CurrentHourProgress returns how far through the current slot now is, as a
// percentage 0-100. Returns 0 if the slot is not current.
func CurrentHourProgress(date string, hour int, now time.Time) float64 {
	if !IsHourCurrent(date, hour, now) {
		return 0
	}
	return float64(now.Minute()) / 60 * 100
}

// ReminderTime computes the wake-up instant for a slot: the hour start minus
// minutesBefore. Returns false when the date is unparseable.
func ReminderTime(date string, hour, minutesBefore int, loc *time.Location) (time.Time, bool) {
	start, ok := HourStart(date, hour, loc)
	if !ok {
		return time.Time{}, false
	}
	return start.Add(-time.Duration(minutesBefore) * time.Minute), true
}
