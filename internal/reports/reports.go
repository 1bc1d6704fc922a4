// Package reports generates weekly planning reports from state snapshots.
// A report covers one Monday-start week and emits a row per goal and hour
// that was available, planned, or logged. Report generation never mutates
// state.
package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"focusedtime/internal/dateutil"
	"focusedtime/internal/state"
)

// Row is one hour of one goal within the report week.
type Row struct {
	GoalID         string
	GoalTitle      string
	Date           string // YYYY-MM-DD
	Hour           string // HH:00
	Plan           string
	Accomplishment string
}

// WeeklyReport aggregates a week of planning data.
type WeeklyReport struct {
	WeekStart time.Time
	WeekEnd   time.Time // last day of the week, inclusive
	Rows      []Row

	HoursPlanned int
	HoursLogged  int

	planLines           []string
	accomplishmentLines []string

	GeneratedAt time.Time
}

// Weekly builds the report for the week weekOffset weeks before now
// (0 = the current week, 1 = last week).
func Weekly(s state.AppState, weekOffset int, now time.Time) *WeeklyReport {
	weekStart := dateutil.StartOfWeekMonday(now.AddDate(0, 0, -7*weekOffset))
	r := &WeeklyReport{
		WeekStart:   weekStart,
		WeekEnd:     weekStart.AddDate(0, 0, 6),
		GeneratedAt: now,
	}

	for _, goal := range s.Goals {
		for d := 0; d < 7; d++ {
			date := dateutil.FormatDate(weekStart.AddDate(0, 0, d))
			available := goal.AvailabilityFor(date)
			plans := goal.Plans[date]
			accomplishments := goal.Accomplishments[date]

			for hour := 0; hour < 24; hour++ {
				plan := plans[hour]
				accomplishment := accomplishments[hour]
				planned := containsHour(available, hour)
				if !planned && plan == "" && accomplishment == "" {
					continue
				}

				r.Rows = append(r.Rows, Row{
					GoalID:         goal.ID,
					GoalTitle:      goal.Title,
					Date:           date,
					Hour:           dateutil.FormatHour(hour),
					Plan:           plan,
					Accomplishment: accomplishment,
				})
				if planned {
					r.HoursPlanned++
				}
				if accomplishment != "" {
					r.HoursLogged++
					r.accomplishmentLines = append(r.accomplishmentLines,
						fmt.Sprintf("- %s %s (%s): %s", date, dateutil.FormatHour(hour), goal.Title, accomplishment))
				}
				if plan != "" {
					r.planLines = append(r.planLines,
						fmt.Sprintf("- %s %s (%s): %s", date, dateutil.FormatHour(hour), goal.Title, plan))
				}
			}
		}
	}
	return r
}

// Empty reports whether the week has no rows at all.
func (r *WeeklyReport) Empty() bool {
	return len(r.Rows) == 0
}

// WriteCSV writes the report rows as CSV with a header line.
func (r *WeeklyReport) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"goal_id", "goal_title", "date", "hour", "plan", "accomplishment"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range r.Rows {
		record := []string{row.GoalID, row.GoalTitle, row.Date, row.Hour, row.Plan, row.Accomplishment}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// TextSummary renders the plain-text weekly summary.
func (r *WeeklyReport) TextSummary() string {
	accomplishments := "No accomplishments logged for this period."
	if len(r.accomplishmentLines) > 0 {
		accomplishments = strings.Join(r.accomplishmentLines, "\n")
	}
	plans := "No plans recorded for this period."
	if len(r.planLines) > 0 {
		plans = strings.Join(r.planLines, "\n")
	}

	var b strings.Builder
	b.WriteString("FocusedTime Weekly Report\n")
	b.WriteString("=============================\n")
	fmt.Fprintf(&b, "Period: %s - %s\n\n",
		r.WeekStart.Format("Jan 2, 2006"), r.WeekEnd.Format("Jan 2, 2006"))
	b.WriteString("Summary:\n--------\n")
	fmt.Fprintf(&b, "Hours Planned This Week: %d\n", r.HoursPlanned)
	fmt.Fprintf(&b, "Hours Logged This Week: %d\n\n", r.HoursLogged)
	b.WriteString("Accomplishments Logged:\n-----------------------\n")
	b.WriteString(accomplishments)
	b.WriteString("\n\nPlans Recorded:\n---------------\n")
	b.WriteString(plans)
	b.WriteString("\n")
	return b.String()
}

func containsHour(hours []int, hour int) bool {
	for _, h := range hours {
		if h == hour {
			return true
		}
	}
	return false
}
