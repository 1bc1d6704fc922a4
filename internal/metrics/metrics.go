// Package metrics computes read-only dashboard figures from state
// snapshots: per-goal progress, the accomplishment streak, and daily
// activity counts. Nothing here mutates state.
package metrics

import (
	"time"

	"focusedtime/internal/dateutil"
	"focusedtime/internal/state"
)

// GoalMetrics are the headline figures shown for one goal.
type GoalMetrics struct {
	// TotalPossibleHours is every hour in the goal's inclusive date range,
	// 0 for an invalid range.
	TotalPossibleHours int

	// AvailableHours counts materialized availability over the entire goal.
	AvailableHours int

	// AvailableHoursFromNow counts availability on today and future dates.
	AvailableHoursFromNow int

	// HoursLogged counts hours with a recorded accomplishment.
	HoursLogged int

	// Progress is HoursLogged / AvailableHours as a percentage, clamped to
	// 0-100. With nothing available but something logged it reads 100.
	Progress float64
}

// ForGoal computes the metrics for a goal as of the given day.
func ForGoal(g state.Goal, today time.Time) GoalMetrics {
	m := GoalMetrics{
		TotalPossibleHours: dateutil.TotalPossibleHours(g.StartDate, g.EndDate),
	}

	todayStr := dateutil.FormatDate(dateutil.StartOfDay(today))
	for _, entry := range g.Availability {
		if _, ok := dateutil.Weekday(entry.Date); !ok {
			continue
		}
		m.AvailableHours += len(entry.Hours)
		if entry.Date >= todayStr {
			m.AvailableHoursFromNow += len(entry.Hours)
		}
	}

	for _, hours := range g.Accomplishments {
		m.HoursLogged += len(hours)
	}

	switch {
	case m.AvailableHours > 0:
		m.Progress = float64(m.HoursLogged) / float64(m.AvailableHours) * 100
		if m.Progress > 100 {
			m.Progress = 100
		}
	case m.HoursLogged > 0:
		m.Progress = 100
	}
	return m
}

// Streak returns the current streak: the number of consecutive days ending
// today or yesterday on which at least one accomplishment was logged,
// across all goals. A last log older than yesterday breaks the streak and
// yields 0. Historical streaks are not reported.
func Streak(goals []state.Goal, today time.Time) int {
	logged := make(map[string]bool)
	for _, g := range goals {
		for date, hours := range g.Accomplishments {
			if len(hours) == 0 {
				continue
			}
			if _, ok := dateutil.Weekday(date); !ok {
				continue
			}
			logged[date] = true
		}
	}
	if len(logged) == 0 {
		return 0
	}

	day := dateutil.StartOfDay(today)
	if !logged[dateutil.FormatDate(day)] {
		day = day.AddDate(0, 0, -1)
		if !logged[dateutil.FormatDate(day)] {
			return 0
		}
	}

	streak := 0
	for logged[dateutil.FormatDate(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// DailyCounts returns the number of accomplishment hours logged per date
// across all goals, the feed for the activity heatmap.
func DailyCounts(goals []state.Goal) map[string]int {
	counts := make(map[string]int)
	for _, g := range goals {
		for date, hours := range g.Accomplishments {
			if len(hours) == 0 {
				continue
			}
			counts[date] += len(hours)
		}
	}
	return counts
}
