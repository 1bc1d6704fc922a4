// Package ui provides terminal user interface components for FocusedTime.
// This file contains the main App model which coordinates all panes and
// routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"focusedtime/internal/config"
	"focusedtime/internal/state"
	"focusedtime/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneGoals PaneID = iota
	PaneGrid
	PaneDashboard
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows all three panes side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ConfirmDeletions      bool
	NarrowLayoutThreshold int
}

// App is the main application model that coordinates all panes.
type App struct {
	store       *state.Store
	styles      *Styles
	config      *AppConfig
	goalsPane   *GoalsPane
	gridPane    *GridPane
	dashPane    *DashboardPane
	helpOverlay *HelpOverlay
	confirmDel  *confirmDeleteState
	activePane  PaneID
	layoutMode  LayoutMode
	showHelp    bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	keys     GlobalKeyMap
	helpKeys HelpKeyMap
}

type confirmDeleteState struct {
	title  string
	body   string
	goalID string
}

// NewApp creates a new application around an already-loaded store.
func NewApp(store *state.Store, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			ConfirmDeletions:      true,
			NarrowLayoutThreshold: 100,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	app := &App{
		store:       store,
		styles:      styles,
		config:      cfg,
		goalsPane:   NewGoalsPane(store, styles, cfg.Keys),
		gridPane:    NewGridPane(store, styles, cfg.Keys),
		dashPane:    NewDashboardPane(store, styles, cfg.Keys),
		helpOverlay: NewHelpOverlay(styles),
		activePane:  PaneGoals,
		keys:        NewGlobalKeyMap(cfg.Keys),
		helpKeys:    DefaultHelpKeyMap(),
	}

	app.goalsPane.SetFocused(true)
	app.gridPane.SetFocused(false)
	app.dashPane.SetFocused(false)
	app.refresh()

	return app
}

// refresh pushes the current store snapshot into every pane.
func (a *App) refresh() {
	st := a.store.Snapshot()
	a.goalsPane.setState(st)
	a.gridPane.setState(st)
	a.dashPane.setState(st)
}

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the periodic clock tick.
func (a *App) Init() tea.Cmd {
	return tickCmd()
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SaveErrorMsg:
		a.SetStatus("Save failed: "+msg.Err.Error(), true)
		return a, nil

	case StateReloadedMsg:
		// The watcher echoes our own saves back; only a genuinely
		// different record is worth re-dispatching.
		if reflect.DeepEqual(msg.State, a.store.Snapshot()) {
			return a, nil
		}
		a.store.Dispatch(state.LoadState{State: msg.State})
		a.refresh()
		a.SetStatus("Reloaded state from disk", false)
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()
	}

	// Forward everything else to the active pane.
	cmd := a.activePaneUpdate(msg)
	a.refresh()
	return a, cmd
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmDel != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			id := a.confirmDel.goalID
			a.confirmDel = nil
			a.store.Dispatch(state.DeleteGoal{ID: id})
			a.refresh()
			a.SetStatus("Goal deleted", false)
		case "n", "N", "esc":
			a.confirmDel = nil
			a.SetStatus("Canceled", false)
		}
		return a, nil
	}

	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	inInputMode := a.goalsPane.IsEditing() || a.gridPane.IsEditing()

	if !inInputMode {
		// Intercept goal deletion for the confirm dialog.
		if a.config.ConfirmDeletions && a.activePane == PaneGoals {
			if key.Matches(msg, a.goalsPane.keys.Delete) {
				g := a.goalsPane.Selected()
				if g == nil {
					a.SetStatus("No goal selected", true)
					return a, nil
				}
				a.confirmDel = &confirmDeleteState{
					title:  "Delete goal?",
					body:   truncateText(g.Title, 60),
					goalID: g.ID,
				}
				return a, nil
			}
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit

		case key.Matches(msg, a.keys.Help):
			a.showHelp = true
			return a, nil

		case key.Matches(msg, a.keys.NextPane):
			a.switchPane()
			return a, nil

		case key.Matches(msg, a.keys.Pane1):
			a.setActivePane(PaneGoals)
			return a, nil

		case key.Matches(msg, a.keys.Pane2):
			a.setActivePane(PaneGrid)
			return a, nil

		case key.Matches(msg, a.keys.Pane3):
			a.setActivePane(PaneDashboard)
			return a, nil
		}
	}

	// Unconfirmed deletes fall through to the pane as well.
	if !a.config.ConfirmDeletions && a.activePane == PaneGoals && !inInputMode {
		if key.Matches(msg, a.goalsPane.keys.Delete) {
			if g := a.goalsPane.Selected(); g != nil {
				a.store.Dispatch(state.DeleteGoal{ID: g.ID})
				a.refresh()
				a.SetStatus("Goal deleted", false)
			}
			return a, nil
		}
	}

	cmd := a.activePaneUpdate(msg)
	a.refresh()
	return a, cmd
}

func (a *App) activePaneUpdate(msg tea.Msg) tea.Cmd {
	switch a.activePane {
	case PaneGoals:
		return a.goalsPane.Update(msg)
	case PaneGrid:
		return a.gridPane.Update(msg)
	case PaneDashboard:
		return a.dashPane.Update(msg)
	}
	return nil
}

// switchPane cycles through panes.
func (a *App) switchPane() {
	switch a.activePane {
	case PaneGoals:
		a.setActivePane(PaneGrid)
	case PaneGrid:
		a.setActivePane(PaneDashboard)
	case PaneDashboard:
		a.setActivePane(PaneGoals)
	}
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane
	a.goalsPane.SetFocused(pane == PaneGoals)
	a.gridPane.SetFocused(pane == PaneGrid)
	a.dashPane.SetFocused(pane == PaneDashboard)
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4
	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 100
	}

	if a.width < threshold {
		a.layoutMode = LayoutNarrow

		narrowHeight := contentHeight - 1
		if narrowHeight < 8 {
			narrowHeight = 8
		}
		paneWidth := totalWidth
		if paneWidth < 20 {
			paneWidth = 20
		}

		a.goalsPane.SetSize(paneWidth, narrowHeight)
		a.gridPane.SetSize(paneWidth, narrowHeight)
		a.dashPane.SetSize(paneWidth, narrowHeight)
	} else {
		a.layoutMode = LayoutWide

		// The grid needs the most room: 7 day columns plus the hour
		// gutter. Goals and dashboard share what remains.
		gridWidth := min((totalWidth*50)/100, 52)
		goalsWidth := (totalWidth - gridWidth - 2) / 2
		dashWidth := totalWidth - gridWidth - goalsWidth - 2

		a.goalsPane.SetSize(goalsWidth, contentHeight)
		a.gridPane.SetSize(gridWidth, contentHeight)
		a.dashPane.SetSize(dashWidth, contentHeight)
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.confirmDel != nil {
		return a.renderConfirmDelete()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())
	return b.String()
}

func (a *App) renderConfirmDelete() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderWideContent renders all three panes side by side.
func (a *App) renderWideContent() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		a.goalsPane.View(), " ", a.gridPane.View(), " ", a.dashPane.View())
}

// renderNarrowContent renders the focused pane with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder

	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	switch a.activePane {
	case PaneGoals:
		b.WriteString(a.goalsPane.View())
	case PaneGrid:
		b.WriteString(a.gridPane.View())
	case PaneDashboard:
		b.WriteString(a.dashPane.View())
	}

	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneGoals, "Goals"},
		{PaneGrid, "Week"},
		{PaneDashboard, "Dashboard"},
	}

	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		label := tab.label
		if tab.id == a.activePane {
			label = activeTabStyle.Render("[" + label + "]")
		} else {
			label = inactiveTabStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}
	return tabBar
}

// renderGoodbye shows an exit message with a short summary.
func (a *App) renderGoodbye() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")

	st := a.store.Snapshot()
	if g := st.ActiveGoal(); g != nil {
		logged := 0
		for _, hours := range g.Accomplishments {
			logged += len(hours)
		}
		b.WriteString(fmt.Sprintf("  %s: %d hours logged so far.\n", g.Title, logged))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTitleBar creates the top title bar with the active goal and date.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" focusedtime ")

	var goalLabel string
	snap := a.store.Snapshot()
	if g := snap.ActiveGoal(); g != nil {
		goalLabel = a.styles.StatLabelStyle.Render("Active: ") +
			a.styles.GoalActiveStyle.Render(truncateText(g.Title, 30))
	}

	dateStr := a.store.Now().Format("Mon Jan 2 · 15:04")
	date := a.styles.DateStyle.Render(dateStr)

	usedWidth := lipgloss.Width(title) + lipgloss.Width(goalLabel) + lipgloss.Width(date)
	spacerWidth := a.width - usedWidth - 6
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	var parts []string
	parts = append(parts, title)
	if goalLabel != "" {
		parts = append(parts, "  "+goalLabel)
	}
	parts = append(parts, strings.Repeat(" ", spacerWidth), date)
	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.goalsPane.IsEditing() {
		return a.styles.RenderHelp(
			"enter", "next/save",
			"esc", "cancel",
		)
	}
	if a.gridPane.IsEditing() {
		return a.styles.RenderHelp(
			"enter", "save",
			"esc", "cancel",
		)
	}

	switch a.activePane {
	case PaneGoals:
		return a.styles.RenderHelp(
			"a", "add",
			"e", "edit",
			"enter", "activate",
			"x", "del",
			"j/k", "nav",
			"tab", "pane",
			"?", "help",
		)
	case PaneGrid:
		return a.styles.RenderHelp(
			"space", "toggle",
			"p", "plan",
			"d", "done",
			"[/]", "week",
			"tab", "pane",
			"?", "help",
		)
	case PaneDashboard:
		return a.styles.RenderHelp(
			"r", "reminders",
			"m", "lead time",
			"tab", "pane",
			"?", "help",
		)
	}
	return ""
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

func truncateText(s string, limit int) string {
	return runewidth.Truncate(s, limit, "…")
}

// Run wires the store, disk persistence, and file watcher into a Bubble Tea
// program and blocks until the user quits.
func Run(store *state.Store, disk *storage.Storage, styles *Styles, cfg *AppConfig) error {
	app := NewApp(store, styles, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	store.Subscribe(func(st state.AppState) {
		if err := disk.SaveState(st); err != nil {
			p.Send(SaveErrorMsg{Err: err})
		}
	})

	cleanup, err := StartWatcher(disk, p)
	if err == nil {
		defer cleanup()
	}

	_, runErr := p.Run()
	return runErr
}
