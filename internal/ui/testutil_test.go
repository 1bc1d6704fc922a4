package ui

import (
	"testing"
	"time"

	"focusedtime/internal/config"
	"focusedtime/internal/state"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// testNow is a fixed Monday noon so week math and derivation are stable.
var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStore creates a store pinned to the fixed test clock.
func createTestStore(t *testing.T) *state.Store {
	t.Helper()
	store := state.NewStore()
	store.SetNowFunc(func() time.Time { return testNow })
	return store
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// addTestGoal dispatches a goal spanning the two weeks around testNow with
// Monday and Wednesday morning availability, and makes it active.
func addTestGoal(t *testing.T, store *state.Store) state.Goal {
	t.Helper()
	g := state.Goal{
		ID:        state.NewGoalID(),
		Title:     "Learn Go",
		StartDate: "2025-06-02",
		EndDate:   "2025-06-15",
		TemplateAvailability: map[int][]int{
			1: {9, 10},
			3: {14},
		},
	}
	store.Dispatch(state.AddGoal{Goal: g})
	store.Dispatch(state.SetActiveGoal{ID: g.ID})
	return g
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func keyEsc() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEscape}
}

func keySpace() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace}
}
