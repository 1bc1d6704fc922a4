package state

// Action is a state transition request. Every action is total: the reducer
// produces a well-formed state for any (state, action) pair and never
// panics; actions referencing unknown goal ids are silent no-ops.
type Action interface {
	isAction()
}

// LoadState replaces the entire state, back-filling containers missing from
// older records and repairing a dangling active goal reference.
type LoadState struct {
	State AppState
}

// AddGoal appends a goal, deriving its availability from the template with
// no prior entries.
type AddGoal struct {
	Goal Goal
}

// UpdateGoal replaces the goal with the payload's id in place, re-deriving
// availability with the stored goal's existing entries as prior.
type UpdateGoal struct {
	Goal Goal
}

// DeleteGoal removes a goal by id. Deleting the active goal moves focus to
// the first remaining goal, or clears it.
type DeleteGoal struct {
	ID string
}

// SetActiveGoal focuses a goal. An empty id clears focus; an unknown id
// leaves the state unchanged.
type SetActiveGoal struct {
	ID string
}

// UpdateAvailability toggles one (date, hour) pair. Selecting creates the
// date entry when absent; deselecting only modifies an existing entry, so a
// date the template never materialized cannot be implicitly un-derived.
type UpdateAvailability struct {
	GoalID   string
	Date     string
	Hour     int
	Selected bool
}

// UpdatePlan sets or clears the plan note at (date, hour). Empty text
// clears, removing the date key once its last hour is gone.
type UpdatePlan struct {
	GoalID string
	Date   string
	Hour   int
	Text   string
}

// UpdateAccomplishment mirrors UpdatePlan for the accomplishments log.
type UpdateAccomplishment struct {
	GoalID string
	Date   string
	Hour   int
	Text   string
}

// UpdateReminderSettings shallow-merges into the reminder settings; nil
// fields are left untouched.
type UpdateReminderSettings struct {
	Enabled       *bool
	MinutesBefore *int
}

func (LoadState) isAction()              {}
func (AddGoal) isAction()                {}
func (UpdateGoal) isAction()             {}
func (DeleteGoal) isAction()             {}
func (SetActiveGoal) isAction()          {}
func (UpdateAvailability) isAction()     {}
func (UpdatePlan) isAction()             {}
func (UpdateAccomplishment) isAction()   {}
func (UpdateReminderSettings) isAction() {}
