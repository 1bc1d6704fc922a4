package state

import (
	"sort"
	"time"
)

// Reduce applies an action to a state and returns the next state. It is
// pure: the input state is never mutated, and only the branches an action
// touches are copied. "today" anchors the derivation engine's past/future
// split for goal create and update.
func Reduce(s AppState, action Action, today time.Time) AppState {
	switch a := action.(type) {
	case LoadState:
		return reduceLoad(a.State)
	case AddGoal:
		return reduceAddGoal(s, a.Goal, today)
	case UpdateGoal:
		return reduceUpdateGoal(s, a.Goal, today)
	case DeleteGoal:
		return reduceDeleteGoal(s, a.ID)
	case SetActiveGoal:
		return reduceSetActiveGoal(s, a.ID)
	case UpdateAvailability:
		return reduceUpdateAvailability(s, a)
	case UpdatePlan:
		return reduceNote(s, a.GoalID, a.Date, a.Hour, a.Text, notePlans)
	case UpdateAccomplishment:
		return reduceNote(s, a.GoalID, a.Date, a.Hour, a.Text, noteAccomplishments)
	case UpdateReminderSettings:
		return reduceReminderSettings(s, a)
	default:
		return s
	}
}

func reduceLoad(loaded AppState) AppState {
	next := loaded
	next.Goals = make([]Goal, len(loaded.Goals))
	for i, g := range loaded.Goals {
		next.Goals[i] = normalizeGoal(g)
	}

	// Repair the active goal reference: it must point at an existing goal or
	// be unset, and defaults to the first goal when there is one.
	if next.ActiveGoalID != "" && next.FindGoal(next.ActiveGoalID) == nil {
		next.ActiveGoalID = ""
	}
	if next.ActiveGoalID == "" && len(next.Goals) > 0 {
		next.ActiveGoalID = next.Goals[0].ID
	}

	switch next.Reminders.MinutesBefore {
	case 5, 10, 15:
	default:
		next.Reminders.MinutesBefore = 15
	}
	return next
}

func reduceAddGoal(s AppState, goal Goal, today time.Time) AppState {
	goal = normalizeGoal(goal.Clone())
	goal.Availability = DeriveAvailability(goal, nil, today)
	if goal.Availability == nil {
		goal.Availability = []Availability{}
	}

	next := s
	next.Goals = make([]Goal, 0, len(s.Goals)+1)
	next.Goals = append(next.Goals, s.Goals...)
	next.Goals = append(next.Goals, goal)
	return next
}

func reduceUpdateGoal(s AppState, goal Goal, today time.Time) AppState {
	idx := goalIndex(s.Goals, goal.ID)
	if idx < 0 {
		return s
	}

	goal = normalizeGoal(goal.Clone())
	goal.Availability = DeriveAvailability(goal, s.Goals[idx].Availability, today)
	if goal.Availability == nil {
		goal.Availability = []Availability{}
	}

	next := s
	next.Goals = append([]Goal(nil), s.Goals...)
	next.Goals[idx] = goal
	return next
}

func reduceDeleteGoal(s AppState, id string) AppState {
	idx := goalIndex(s.Goals, id)
	if idx < 0 {
		return s
	}

	next := s
	next.Goals = make([]Goal, 0, len(s.Goals)-1)
	next.Goals = append(next.Goals, s.Goals[:idx]...)
	next.Goals = append(next.Goals, s.Goals[idx+1:]...)

	if next.ActiveGoalID == id {
		next.ActiveGoalID = ""
		if len(next.Goals) > 0 {
			next.ActiveGoalID = next.Goals[0].ID
		}
	}
	return next
}

func reduceSetActiveGoal(s AppState, id string) AppState {
	if id != "" && goalIndex(s.Goals, id) < 0 {
		return s
	}
	next := s
	next.ActiveGoalID = id
	return next
}

func reduceUpdateAvailability(s AppState, a UpdateAvailability) AppState {
	idx := goalIndex(s.Goals, a.GoalID)
	if idx < 0 || a.Hour < 0 || a.Hour > 23 {
		return s
	}

	goal := s.Goals[idx]
	entryIdx := -1
	for i := range goal.Availability {
		if goal.Availability[i].Date == a.Date {
			entryIdx = i
			break
		}
	}

	availability := cloneAvailability(goal.Availability)
	switch {
	case entryIdx >= 0:
		hours := availability[entryIdx].Hours
		if a.Selected {
			hours = sortedUniqueHours(append(hours, a.Hour))
		} else {
			hours = removeHour(hours, a.Hour)
		}
		if len(hours) == 0 {
			// An entry with no hours is indistinguishable from absence
			// everywhere downstream; drop it.
			availability = append(availability[:entryIdx], availability[entryIdx+1:]...)
		} else {
			availability[entryIdx].Hours = hours
		}
	case a.Selected:
		availability = append(availability, Availability{Date: a.Date, Hours: []int{a.Hour}})
		sort.Slice(availability, func(i, j int) bool { return availability[i].Date < availability[j].Date })
	default:
		// Deselecting a date that was never materialized is a no-op.
		return s
	}

	goal.Availability = availability
	next := s
	next.Goals = append([]Goal(nil), s.Goals...)
	next.Goals[idx] = goal
	return next
}

type noteKind int

const (
	notePlans noteKind = iota
	noteAccomplishments
)

func reduceNote(s AppState, goalID, date string, hour int, text string, kind noteKind) AppState {
	idx := goalIndex(s.Goals, goalID)
	if idx < 0 || hour < 0 || hour > 23 {
		return s
	}

	goal := s.Goals[idx]
	var notes map[string]map[int]string
	if kind == notePlans {
		notes = cloneNotes(goal.Plans)
	} else {
		notes = cloneNotes(goal.Accomplishments)
	}

	if text != "" {
		hours := notes[date]
		if hours == nil {
			hours = map[int]string{}
			notes[date] = hours
		}
		hours[hour] = text
	} else {
		// Empty text clears. Prune the date key once its hour map is empty so
		// no dangling keys survive an edit.
		if hours, ok := notes[date]; ok {
			delete(hours, hour)
			if len(hours) == 0 {
				delete(notes, date)
			}
		}
	}

	if kind == notePlans {
		goal.Plans = notes
	} else {
		goal.Accomplishments = notes
	}

	next := s
	next.Goals = append([]Goal(nil), s.Goals...)
	next.Goals[idx] = goal
	return next
}

func reduceReminderSettings(s AppState, a UpdateReminderSettings) AppState {
	next := s
	if a.Enabled != nil {
		next.Reminders.Enabled = *a.Enabled
	}
	if a.MinutesBefore != nil {
		switch *a.MinutesBefore {
		case 5, 10, 15:
			next.Reminders.MinutesBefore = *a.MinutesBefore
		}
	}
	return next
}

func goalIndex(goals []Goal, id string) int {
	for i := range goals {
		if goals[i].ID == id {
			return i
		}
	}
	return -1
}

func removeHour(hours []int, hour int) []int {
	out := make([]int, 0, len(hours))
	for _, h := range hours {
		if h != hour {
			out = append(out, h)
		}
	}
	return out
}
