// Package remind schedules pre-slot reminder notifications. A wake-up is
// computed for every future available hour across all goals; the scheduler
// owns the pending timers and rebuilds them from scratch whenever state
// changes, so a stale timer referencing old data can never fire.
package remind

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"focusedtime/internal/dateutil"
	"focusedtime/internal/notify"
	"focusedtime/internal/state"
)

// Wakeup is one scheduled reminder instant.
type Wakeup struct {
	ID            string // goalID-date-hour, stable across reschedules
	GoalTitle     string
	Date          string
	Hour          int
	MinutesBefore int
	At            time.Time
}

// Wakeups computes every pending reminder for the given state: one per
// (goal, date, hour) availability triple whose wake-up instant is still in
// the future. Returns nil when reminders are disabled. Pure; the scheduler
// and tests share it.
func Wakeups(s state.AppState, now time.Time, loc *time.Location) []Wakeup {
	if !s.Reminders.Enabled {
		return nil
	}

	var wakeups []Wakeup
	for _, goal := range s.Goals {
		for _, entry := range goal.Availability {
			for _, hour := range entry.Hours {
				at, ok := dateutil.ReminderTime(entry.Date, hour, s.Reminders.MinutesBefore, loc)
				if !ok || !at.After(now) {
					continue
				}
				wakeups = append(wakeups, Wakeup{
					ID:            fmt.Sprintf("%s-%s-%d", goal.ID, entry.Date, hour),
					GoalTitle:     goal.Title,
					Date:          entry.Date,
					Hour:          hour,
					MinutesBefore: s.Reminders.MinutesBefore,
					At:            at,
				})
			}
		}
	}

	sort.Slice(wakeups, func(i, j int) bool {
		if !wakeups[i].At.Equal(wakeups[j].At) {
			return wakeups[i].At.Before(wakeups[j].At)
		}
		return wakeups[i].ID < wakeups[j].ID
	})
	return wakeups
}

// Title returns the notification title for the wake-up.
func (w Wakeup) Title() string {
	return "Upcoming Block: " + w.GoalTitle
}

// Body returns the notification body for the wake-up.
func (w Wakeup) Body() string {
	return fmt.Sprintf("Your scheduled block for %q at %s starts in %d minutes.",
		w.GoalTitle, dateutil.FormatHour(w.Hour), w.MinutesBefore)
}

// Scheduler owns the pending reminder timers. Safe for concurrent use;
// timers fire on their own goroutines.
type Scheduler struct {
	mu       sync.Mutex
	notifier notify.Notifier
	timers   map[string]scheduled
	gen      uint64
	sound    bool
	loc      *time.Location
	now      func() time.Time // injectable clock for deterministic tests
}

// scheduled tags a timer with the Reschedule generation that created it.
// Timer.Stop cannot cancel a callback already dispatched, so the generation
// is the authority on whether a firing callback is still current.
type scheduled struct {
	timer *time.Timer
	gen   uint64
}

// NewScheduler creates a scheduler that delivers through the given notifier.
func NewScheduler(notifier notify.Notifier, sound bool) *Scheduler {
	return &Scheduler{
		notifier: notifier,
		timers:   map[string]scheduled{},
		sound:    sound,
		loc:      time.Local,
		now:      time.Now,
	}
}

// SetNowFunc overrides the scheduler clock. Passing nil resets it.
func (s *Scheduler) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// Reschedule cancels every pending timer and schedules the state's wake-ups
// afresh. Cancellation is total and immediate; after Reschedule returns, no
// timer created by an earlier call can fire.
func (s *Scheduler) Reschedule(st state.AppState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelAllLocked()
	s.gen++
	gen := s.gen
	now := s.now()
	for _, w := range Wakeups(st, now, s.loc) {
		w := w
		s.timers[w.ID] = scheduled{
			timer: time.AfterFunc(w.At.Sub(now), func() { s.fire(w, gen) }),
			gen:   gen,
		}
	}
}

// Stop cancels every pending timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelAllLocked()
}

// Pending returns the number of scheduled wake-ups.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) cancelAllLocked() {
	for id, entry := range s.timers {
		entry.timer.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) fire(w Wakeup, gen uint64) {
	s.mu.Lock()
	entry, ok := s.timers[w.ID]
	// A callback whose generation has been superseded carries stale wakeup
	// data; it must neither deliver nor touch the entry a later Reschedule
	// may have installed under the same ID.
	if !ok || entry.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.timers, w.ID)
	notifier := s.notifier
	sound := s.sound
	s.mu.Unlock()

	if sound {
		_ = notifier.SendWithSound(w.Title(), w.Body())
		return
	}
	_ = notifier.Send(w.Title(), w.Body())
}
