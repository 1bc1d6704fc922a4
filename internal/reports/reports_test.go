package reports

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"focusedtime/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tuesday 2025-06-10; its Monday-start week is 2025-06-09 .. 2025-06-15.
var reportNow = time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)

func weekFixture() state.AppState {
	s := state.NewAppState()
	s.Goals = []state.Goal{
		{
			ID:        "g1",
			Title:     "Thesis, chapter 2",
			StartDate: "2025-06-01",
			EndDate:   "2025-06-30",
			Availability: []state.Availability{
				{Date: "2025-06-09", Hours: []int{9, 10}},
				{Date: "2025-06-16", Hours: []int{9}}, // next week, excluded
			},
			Plans: map[string]map[int]string{
				"2025-06-09": {9: "outline section"},
			},
			Accomplishments: map[string]map[int]string{
				"2025-06-09": {10: "wrote two pages"},
				"2025-06-11": {7: "early start"}, // unplanned hour still reported
			},
		},
	}
	return s
}

func TestWeekly_WeekBounds(t *testing.T) {
	r := Weekly(state.NewAppState(), 0, reportNow)
	assert.Equal(t, "2025-06-09", r.WeekStart.Format("2006-01-02"))
	assert.Equal(t, "2025-06-15", r.WeekEnd.Format("2006-01-02"))

	last := Weekly(state.NewAppState(), 1, reportNow)
	assert.Equal(t, "2025-06-02", last.WeekStart.Format("2006-01-02"))
}

func TestWeekly_Rows(t *testing.T) {
	r := Weekly(weekFixture(), 0, reportNow)

	require.Len(t, r.Rows, 3)
	assert.Equal(t, Row{
		GoalID: "g1", GoalTitle: "Thesis, chapter 2",
		Date: "2025-06-09", Hour: "09:00",
		Plan: "outline section",
	}, r.Rows[0])
	assert.Equal(t, "10:00", r.Rows[1].Hour)
	assert.Equal(t, "wrote two pages", r.Rows[1].Accomplishment)
	assert.Equal(t, "2025-06-11", r.Rows[2].Date, "logged hour outside availability still shows up")

	assert.Equal(t, 2, r.HoursPlanned, "next week's availability is excluded")
	assert.Equal(t, 2, r.HoursLogged)
	assert.False(t, r.Empty())
}

func TestWeekly_EmptyWeek(t *testing.T) {
	r := Weekly(weekFixture(), 10, reportNow)
	assert.True(t, r.Empty())
	assert.Equal(t, 0, r.HoursPlanned)
}

func TestWriteCSV(t *testing.T) {
	r := Weekly(weekFixture(), 0, reportNow)

	var buf bytes.Buffer
	require.NoError(t, r.WriteCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"goal_id", "goal_title", "date", "hour", "plan", "accomplishment"}, records[0])
	assert.Equal(t, []string{"g1", "Thesis, chapter 2", "2025-06-09", "09:00", "outline section", ""}, records[1])
}

func TestWriteCSV_QuotesFieldsWithCommas(t *testing.T) {
	r := Weekly(weekFixture(), 0, reportNow)

	var buf bytes.Buffer
	require.NoError(t, r.WriteCSV(&buf))

	// The goal title contains a comma; a CSV reader must round-trip it.
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Thesis, chapter 2", records[1][1])
}

func TestTextSummary(t *testing.T) {
	r := Weekly(weekFixture(), 0, reportNow)
	text := r.TextSummary()

	assert.Contains(t, text, "Period: Jun 9, 2025 - Jun 15, 2025")
	assert.Contains(t, text, "Hours Planned This Week: 2")
	assert.Contains(t, text, "Hours Logged This Week: 2")
	assert.Contains(t, text, "- 2025-06-09 10:00 (Thesis, chapter 2): wrote two pages")
	assert.Contains(t, text, "- 2025-06-09 09:00 (Thesis, chapter 2): outline section")
}

func TestTextSummary_EmptyWeek(t *testing.T) {
	text := Weekly(state.NewAppState(), 0, reportNow).TextSummary()
	assert.Contains(t, text, "No accomplishments logged for this period.")
	assert.Contains(t, text, "No plans recorded for this period.")
}
