// Package ui provides terminal user interface components for FocusedTime.
// This file defines message types delivered into the Bubble Tea event loop
// from outside the Update cycle (the persistence subscriber and the file
// watcher run on their own goroutines and use Program.Send).
package ui

import (
	"time"

	"focusedtime/internal/state"
)

// SaveErrorMsg reports a failed background save. The in-memory state stays
// authoritative; the UI only surfaces the error in the status line.
type SaveErrorMsg struct {
	Err error
}

// StateReloadedMsg carries state re-read from disk after an external change
// to the data file.
type StateReloadedMsg struct {
	State state.AppState
}

// tickMsg is sent periodically for clock and status-line updates.
type tickMsg time.Time
