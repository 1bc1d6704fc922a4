// Package ui provides terminal user interface components for FocusedTime.
package ui

import (
	"fmt"
	"strings"

	"focusedtime/internal/config"
	"focusedtime/internal/dateutil"
	"focusedtime/internal/metrics"
	"focusedtime/internal/state"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DashboardPane shows progress metrics for the active goal, the cross-goal
// accomplishment streak, and the reminder settings controls.
type DashboardPane struct {
	store     *state.Store
	goals     []state.Goal
	goal      *state.Goal
	reminders state.ReminderSettings
	focused   bool
	width     int
	height    int
	styles    *Styles
	keys      DashboardKeyMap
}

// NewDashboardPane creates a new dashboard pane.
func NewDashboardPane(store *state.Store, styles *Styles, keyCfg *config.KeysConfig) *DashboardPane {
	return &DashboardPane{
		store:  store,
		styles: styles,
		keys:   NewDashboardKeyMap(keyCfg),
	}
}

// setState refreshes the pane from a state snapshot.
func (p *DashboardPane) setState(st state.AppState) {
	p.goals = st.Goals
	p.goal = st.ActiveGoal()
	p.reminders = st.Reminders
}

// SetSize sets the pane dimensions.
func (p *DashboardPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *DashboardPane) SetFocused(focused bool) {
	p.focused = focused
}

// Update handles messages for the dashboard pane. Metrics are read-only;
// the reminder settings are edited here.
func (p *DashboardPane) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.ToggleReminders):
		enabled := !p.reminders.Enabled
		p.store.Dispatch(state.UpdateReminderSettings{Enabled: &enabled})
	case key.Matches(keyMsg, p.keys.CycleLeadTime):
		minutes := nextLeadTime(p.reminders.MinutesBefore)
		p.store.Dispatch(state.UpdateReminderSettings{MinutesBefore: &minutes})
	}
	return nil
}

// nextLeadTime cycles the reminder lead through the allowed 5/10/15 steps.
func nextLeadTime(minutes int) int {
	switch minutes {
	case 5:
		return 10
	case 10:
		return 15
	default:
		return 5
	}
}

// View renders the dashboard pane.
func (p *DashboardPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("DASHBOARD"))
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	now := p.store.Now()

	if p.goal == nil {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No active goal."))
		b.WriteString("\n")
	} else if !validRange(p.goal) {
		b.WriteString(p.styles.ErrorStyle.Render("  Invalid date range."))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Render(
			fmt.Sprintf("  %s to %s", p.goal.StartDate, p.goal.EndDate)))
		b.WriteString("\n")
	} else {
		m := metrics.ForGoal(*p.goal, now)
		b.WriteString(p.renderStat("Possible hours", fmt.Sprintf("%d", m.TotalPossibleHours)))
		b.WriteString(p.renderStat("Available", fmt.Sprintf("%d", m.AvailableHours)))
		b.WriteString(p.renderStat("Remaining", fmt.Sprintf("%d", m.AvailableHoursFromNow)))
		b.WriteString(p.renderStat("Logged", fmt.Sprintf("%d", m.HoursLogged)))
		b.WriteString("\n")
		b.WriteString(p.renderProgressBar(m.Progress))
		b.WriteString("\n")
	}

	streak := metrics.Streak(p.goals, now)
	b.WriteString("\n")
	if streak > 0 {
		b.WriteString("  " + p.styles.StreakStyle.Render(fmt.Sprintf("%d day streak", streak)))
	} else {
		b.WriteString("  " + p.styles.StatLabelStyle.Render("No streak yet"))
	}
	b.WriteString("\n\n")

	if p.reminders.Enabled {
		b.WriteString(p.renderStat("Reminders", fmt.Sprintf("on, %d min before", p.reminders.MinutesBefore)))
	} else {
		b.WriteString(p.renderStat("Reminders", "off"))
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}

// validRange reports whether the goal's dates parse and are ordered.
// Imported records can carry ranges the add form would have rejected.
func validRange(g *state.Goal) bool {
	start, err := dateutil.ParseDate(g.StartDate)
	if err != nil {
		return false
	}
	end, err := dateutil.ParseDate(g.EndDate)
	if err != nil {
		return false
	}
	return !end.Before(start)
}

func (p *DashboardPane) renderStat(label, value string) string {
	return fmt.Sprintf("  %s %s\n",
		p.styles.StatLabelStyle.Render(fmt.Sprintf("%-15s", label)),
		p.styles.StatValueStyle.Render(value))
}

// renderProgressBar draws a simple bar for the logged/available ratio.
func (p *DashboardPane) renderProgressBar(progress float64) string {
	barWidth := p.width - 12
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(progress / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := p.styles.ProgressStyle.Render(strings.Repeat("█", filled)) +
		p.styles.CellEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("  %s %s", bar, p.styles.StatValueStyle.Render(fmt.Sprintf("%.0f%%", progress)))
}
