// Package state holds the application state model, the availability
// derivation engine, and the reducer that is the single mutation path for
// all of it. The JSON field names are part of the export format and must
// stay stable so exported records round-trip.
package state

// Goal is a planning unit with a bounded date range.
type Goal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// StartDate and EndDate are inclusive YYYY-MM-DD dates. A reversed or
	// unparseable range is not an error: derivation and metrics degrade to
	// empty/zero.
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	// TemplateAvailability maps day-of-week (0=Sunday .. 6=Saturday) to the
	// recurring set of available hours for that weekday. Nil means no
	// recurring template.
	TemplateAvailability map[int][]int `json:"templateAvailability,omitempty"`

	// Availability is the materialized, authoritative schedule: at most one
	// entry per date, ordered by date, hours unique and sorted ascending.
	// The template is only a generator for it.
	Availability []Availability `json:"availability"`

	// Plans and Accomplishments map date -> hour -> note text. Date keys with
	// empty hour maps are pruned on every edit.
	Plans           map[string]map[int]string `json:"plans"`
	Accomplishments map[string]map[int]string `json:"accomplishments"`
}

// Availability is the set of available hours for one concrete date.
type Availability struct {
	Date  string `json:"date"`
	Hours []int  `json:"hours"`
}

// ReminderSettings controls pre-slot reminder notifications.
type ReminderSettings struct {
	Enabled       bool `json:"enabled"`
	MinutesBefore int  `json:"minutesBefore"` // one of 5, 10, 15
}

// AppState is the whole application state. There is exactly one instance,
// owned by the Store, and it only changes through the reducer.
type AppState struct {
	Goals []Goal `json:"goals"`

	// ActiveGoalID is the id of the focused goal, or "" for none. It always
	// references an existing goal when set.
	ActiveGoalID string `json:"activeGoalId"`

	Reminders ReminderSettings `json:"reminders"`
}

// NewAppState returns the empty initial state.
func NewAppState() AppState {
	return AppState{
		Goals:     []Goal{},
		Reminders: ReminderSettings{Enabled: false, MinutesBefore: 15},
	}
}

// FindGoal returns a pointer to the goal with the given id, or nil.
func (s *AppState) FindGoal(id string) *Goal {
	for i := range s.Goals {
		if s.Goals[i].ID == id {
			return &s.Goals[i]
		}
	}
	return nil
}

// ActiveGoal returns the currently focused goal, or nil.
func (s *AppState) ActiveGoal() *Goal {
	if s.ActiveGoalID == "" {
		return nil
	}
	return s.FindGoal(s.ActiveGoalID)
}

// AvailabilityFor returns the hours available on a date, or nil if the date
// has no materialized entry.
func (g *Goal) AvailabilityFor(date string) []int {
	for i := range g.Availability {
		if g.Availability[i].Date == date {
			return g.Availability[i].Hours
		}
	}
	return nil
}

// Clone returns a deep copy of the goal.
func (g Goal) Clone() Goal {
	out := g
	out.TemplateAvailability = cloneTemplate(g.TemplateAvailability)
	out.Availability = cloneAvailability(g.Availability)
	out.Plans = cloneNotes(g.Plans)
	out.Accomplishments = cloneNotes(g.Accomplishments)
	return out
}

// Clone returns a deep copy of the state. The Store hands these out as
// snapshots so subscribers can never alias the owned state.
func (s AppState) Clone() AppState {
	out := s
	out.Goals = make([]Goal, len(s.Goals))
	for i := range s.Goals {
		out.Goals[i] = s.Goals[i].Clone()
	}
	return out
}

func cloneTemplate(t map[int][]int) map[int][]int {
	if t == nil {
		return nil
	}
	out := make(map[int][]int, len(t))
	for day, hours := range t {
		out[day] = append([]int(nil), hours...)
	}
	return out
}

func cloneAvailability(a []Availability) []Availability {
	out := make([]Availability, len(a))
	for i, entry := range a {
		out[i] = Availability{Date: entry.Date, Hours: append([]int(nil), entry.Hours...)}
	}
	return out
}

func cloneNotes(n map[string]map[int]string) map[string]map[int]string {
	if n == nil {
		return map[string]map[int]string{}
	}
	out := make(map[string]map[int]string, len(n))
	for date, hours := range n {
		m := make(map[int]string, len(hours))
		for h, text := range hours {
			m[h] = text
		}
		out[date] = m
	}
	return out
}

// normalizeGoal back-fills containers that may be missing in older or
// imported records.
func normalizeGoal(g Goal) Goal {
	if g.Availability == nil {
		g.Availability = []Availability{}
	}
	if g.Plans == nil {
		g.Plans = map[string]map[int]string{}
	}
	if g.Accomplishments == nil {
		g.Accomplishments = map[string]map[int]string{}
	}
	return g
}
