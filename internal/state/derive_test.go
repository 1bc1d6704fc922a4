package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-01-02 is a Thursday.
var testToday = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

func templateGoal(template map[int][]int) Goal {
	return Goal{
		ID:                   "g1",
		Title:                "Deep work",
		StartDate:            "2025-01-01",
		EndDate:              "2025-01-03",
		TemplateAvailability: template,
	}
}

func TestDeriveAvailability_NoTemplateReturnsPrior(t *testing.T) {
	prior := []Availability{{Date: "2025-01-01", Hours: []int{8}}}

	goal := templateGoal(nil)
	got := DeriveAvailability(goal, prior, testToday)
	assert.Equal(t, prior, got, "manual entries must survive a derivation with no template")
}

func TestDeriveAvailability_InvalidRangeReturnsPrior(t *testing.T) {
	prior := []Availability{{Date: "2025-01-01", Hours: []int{8}}}

	goal := templateGoal(map[int][]int{1: {9}})
	goal.StartDate, goal.EndDate = "2025-01-03", "2025-01-01"
	assert.Equal(t, prior, DeriveAvailability(goal, prior, testToday))

	goal.StartDate, goal.EndDate = "not-a-date", "2025-01-03"
	assert.Equal(t, prior, DeriveAvailability(goal, prior, testToday))
}

func TestDeriveAvailability_TemplateMissesEveryWeekday(t *testing.T) {
	// Template only covers Wednesday; the only Wednesday in range is in the
	// past and prior has nothing for it.
	goal := templateGoal(map[int][]int{3: {9, 10}})
	got := DeriveAvailability(goal, nil, testToday)
	assert.Empty(t, got)
}

func TestDeriveAvailability_TodayIsRegenerated(t *testing.T) {
	// Thursday template, today is Thursday.
	goal := templateGoal(map[int][]int{4: {13, 14}})
	got := DeriveAvailability(goal, nil, testToday)
	require.Len(t, got, 1)
	assert.Equal(t, Availability{Date: "2025-01-02", Hours: []int{13, 14}}, got[0])
}

func TestDeriveAvailability_PastPreserved(t *testing.T) {
	// Prior has a manual override on the past Wednesday with hours the
	// template does not mention; it must be copied verbatim.
	prior := []Availability{{Date: "2025-01-01", Hours: []int{22, 23}}}

	goal := templateGoal(map[int][]int{3: {9, 10}, 4: {13}})
	got := DeriveAvailability(goal, prior, testToday)
	require.Len(t, got, 2)
	assert.Equal(t, Availability{Date: "2025-01-01", Hours: []int{22, 23}}, got[0])
	assert.Equal(t, Availability{Date: "2025-01-02", Hours: []int{13}}, got[1])
}

func TestDeriveAvailability_PastAbsentStaysAbsent(t *testing.T) {
	goal := templateGoal(map[int][]int{3: {9, 10}})
	got := DeriveAvailability(goal, nil, testToday)
	for _, entry := range got {
		assert.NotEqual(t, "2025-01-01", entry.Date, "past date without prior must not be regenerated")
	}
}

func TestDeriveAvailability_EntirelyPastRange(t *testing.T) {
	goal := Goal{
		ID:                   "g1",
		StartDate:            "2024-12-01",
		EndDate:              "2024-12-05",
		TemplateAvailability: map[int][]int{1: {9}},
	}
	prior := []Availability{
		{Date: "2024-12-02", Hours: []int{7}},
		{Date: "2024-12-31", Hours: []int{8}}, // outside range, dropped
	}

	got := DeriveAvailability(goal, prior, testToday)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-12-02", got[0].Date)
}

func TestDeriveAvailability_RangeShrinkTruncates(t *testing.T) {
	goal := templateGoal(map[int][]int{4: {13}})
	prior := []Availability{
		{Date: "2024-12-25", Hours: []int{9}}, // manual override now out of range
	}

	got := DeriveAvailability(goal, prior, testToday)
	for _, entry := range got {
		assert.NotEqual(t, "2024-12-25", entry.Date)
	}
}

func TestDeriveAvailability_HoursSortedAndDeduplicated(t *testing.T) {
	goal := templateGoal(map[int][]int{4: {14, 13, 14, 13}})
	got := DeriveAvailability(goal, nil, testToday)
	require.Len(t, got, 1)
	assert.Equal(t, []int{13, 14}, got[0].Hours)
}

func TestDeriveAvailability_OutOfRangeHoursIgnored(t *testing.T) {
	goal := templateGoal(map[int][]int{4: {-1, 24, 9}})
	got := DeriveAvailability(goal, nil, testToday)
	require.Len(t, got, 1)
	assert.Equal(t, []int{9}, got[0].Hours)
}

func TestDeriveAvailability_Idempotent(t *testing.T) {
	goal := Goal{
		ID:        "g1",
		StartDate: "2024-12-30",
		EndDate:   "2025-01-05",
		TemplateAvailability: map[int][]int{
			1: {9, 10}, 4: {13}, 6: {8},
		},
	}
	prior := []Availability{
		{Date: "2024-12-30", Hours: []int{20}},
		{Date: "2025-01-01", Hours: []int{6, 7}},
	}

	once := DeriveAvailability(goal, prior, testToday)
	twice := DeriveAvailability(goal, once, testToday)
	assert.Equal(t, once, twice, "derivation must be a fixed point on its own output")
}

func TestDeriveAvailability_SortedByDate(t *testing.T) {
	goal := Goal{
		ID:                   "g1",
		StartDate:            "2025-01-02",
		EndDate:              "2025-01-12",
		TemplateAvailability: map[int][]int{0: {8}, 3: {9}, 5: {10}},
	}

	got := DeriveAvailability(goal, nil, testToday)
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Date, got[i].Date)
	}
}
