package state

import (
	"sort"
	"time"

	"focusedtime/internal/dateutil"
)

// DeriveAvailability reconciles a goal's recurring weekly template against
// its concrete date range, producing the materialized availability list.
//
// The rules, in order:
//   - No template, or an invalid/empty date range: prior is returned
//     unchanged. Manual entries are never touched by a non-regenerating
//     derivation.
//   - Dates before today keep whatever prior had for them, verbatim; a
//     template change never rewrites elapsed history.
//   - Today and future dates are regenerated from the template: the
//     weekday's hours, sorted and deduplicated, or no entry at all when the
//     template is silent for that weekday.
//
// Dates outside [StartDate, EndDate] are dropped even if prior had entries
// for them; shrinking the range is a deliberate truncation.
//
// The result is sorted ascending by date, and re-deriving the output for the
// same today is a fixed point.
func DeriveAvailability(goal Goal, prior []Availability, today time.Time) []Availability {
	if len(goal.TemplateAvailability) == 0 {
		return prior
	}
	dates := dateutil.DatesInRange(goal.StartDate, goal.EndDate)
	if len(dates) == 0 {
		return prior
	}

	priorByDate := make(map[string]Availability, len(prior))
	for _, entry := range prior {
		priorByDate[entry.Date] = entry
	}

	todayStr := dateutil.FormatDate(today)
	derived := make([]Availability, 0, len(dates))
	for _, date := range dates {
		if date < todayStr {
			if entry, ok := priorByDate[date]; ok {
				derived = append(derived, entry)
			}
			continue
		}

		weekday, ok := dateutil.Weekday(date)
		if !ok {
			continue
		}
		hours := sortedUniqueHours(goal.TemplateAvailability[weekday])
		if len(hours) == 0 {
			continue
		}
		derived = append(derived, Availability{Date: date, Hours: hours})
	}

	// DatesInRange enumerates in order, so this is already sorted; keep the
	// invariant explicit anyway.
	sort.Slice(derived, func(i, j int) bool { return derived[i].Date < derived[j].Date })
	return derived
}

// sortedUniqueHours returns the in-range hours of the input, deduplicated
// and sorted ascending. Nil when nothing valid remains.
func sortedUniqueHours(hours []int) []int {
	if len(hours) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(hours))
	out := make([]int, 0, len(hours))
	for _, h := range hours {
		if h < 0 || h > 23 {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Ints(out)
	return out
}
