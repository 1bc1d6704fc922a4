// Package ui provides terminal user interface components for FocusedTime.
package ui

import (
	"fmt"
	"strings"
	"time"

	"focusedtime/internal/config"
	"focusedtime/internal/dateutil"
	"focusedtime/internal/state"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// noteKind identifies which note field a grid edit targets.
type noteKind int

const (
	notePlan noteKind = iota
	noteAccomplishment
)

// GridPane renders the week grid for the active goal: one column per day
// (Monday-start week), one row per hour. Availability is toggled per cell;
// plans and accomplishments are edited per cell.
type GridPane struct {
	store      *state.Store
	goal       *state.Goal
	weekOffset int
	cursorDay  int // 0 = Monday
	cursorHour int
	focused    bool
	width      int
	height     int
	styles     *Styles

	editing  bool
	editKind noteKind
	input    textinput.Model

	keys      GridKeyMap
	inputKeys InputKeyMap
}

// NewGridPane creates a new week grid pane.
func NewGridPane(store *state.Store, styles *Styles, keyCfg *config.KeysConfig) *GridPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	return &GridPane{
		store:      store,
		cursorHour: 9,
		styles:     styles,
		input:      ti,
		keys:       NewGridKeyMap(keyCfg),
		inputKeys:  NewInputKeyMap(keyCfg),
	}
}

// setState refreshes the pane from a state snapshot.
func (p *GridPane) setState(st state.AppState) {
	p.goal = st.ActiveGoal()
}

// SetSize sets the pane dimensions.
func (p *GridPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-6)
}

// SetFocused sets whether this pane is focused.
func (p *GridPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsEditing reports whether a note edit is open.
func (p *GridPane) IsEditing() bool {
	return p.editing
}

// weekStart returns the Monday of the displayed week.
func (p *GridPane) weekStart() time.Time {
	return dateutil.StartOfWeekMonday(p.store.Now()).AddDate(0, 0, p.weekOffset*7)
}

// cursorDate returns the date string under the cursor.
func (p *GridPane) cursorDate() string {
	return dateutil.FormatDate(p.weekStart().AddDate(0, 0, p.cursorDay))
}

// Update handles messages for the grid pane.
func (p *GridPane) Update(msg tea.Msg) tea.Cmd {
	if p.editing {
		return p.updateEdit(msg)
	}

	if !p.focused || p.goal == nil {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.Up):
		p.cursorHour = max(p.cursorHour-1, 0)

	case key.Matches(keyMsg, p.keys.Down):
		p.cursorHour = min(p.cursorHour+1, 23)

	case key.Matches(keyMsg, p.keys.Left):
		if p.cursorDay == 0 {
			p.weekOffset--
			p.cursorDay = 6
		} else {
			p.cursorDay--
		}

	case key.Matches(keyMsg, p.keys.Right):
		if p.cursorDay == 6 {
			p.weekOffset++
			p.cursorDay = 0
		} else {
			p.cursorDay++
		}

	case key.Matches(keyMsg, p.keys.PrevWeek):
		p.weekOffset--

	case key.Matches(keyMsg, p.keys.NextWeek):
		p.weekOffset++

	case key.Matches(keyMsg, p.keys.Toggle):
		date := p.cursorDate()
		selected := !p.hourAvailable(date, p.cursorHour)
		p.store.Dispatch(state.UpdateAvailability{
			GoalID:   p.goal.ID,
			Date:     date,
			Hour:     p.cursorHour,
			Selected: selected,
		})
		p.setState(p.store.Snapshot())

	case key.Matches(keyMsg, p.keys.EditPlan):
		p.openEdit(notePlan)
		return textinput.Blink

	case key.Matches(keyMsg, p.keys.EditAccomplishment):
		p.openEdit(noteAccomplishment)
		return textinput.Blink
	}

	return nil
}

func (p *GridPane) openEdit(kind noteKind) {
	p.editing = true
	p.editKind = kind
	date := p.cursorDate()

	var current string
	switch kind {
	case notePlan:
		p.input.Placeholder = "Plan for this hour"
		current = p.goal.Plans[date][p.cursorHour]
	case noteAccomplishment:
		p.input.Placeholder = "What got done"
		current = p.goal.Accomplishments[date][p.cursorHour]
	}
	p.input.SetValue(current)
	p.input.Focus()
	p.input.CursorEnd()
}

func (p *GridPane) updateEdit(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(keyMsg, p.inputKeys.Cancel):
		p.closeEdit()
		return nil

	case key.Matches(keyMsg, p.inputKeys.Confirm):
		text := strings.TrimSpace(p.input.Value())
		date := p.cursorDate()
		switch p.editKind {
		case notePlan:
			p.store.Dispatch(state.UpdatePlan{
				GoalID: p.goal.ID, Date: date, Hour: p.cursorHour, Text: text,
			})
		case noteAccomplishment:
			p.store.Dispatch(state.UpdateAccomplishment{
				GoalID: p.goal.ID, Date: date, Hour: p.cursorHour, Text: text,
			})
		}
		p.setState(p.store.Snapshot())
		p.closeEdit()
		return nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *GridPane) closeEdit() {
	p.editing = false
	p.input.Reset()
	p.input.Blur()
}

func (p *GridPane) hourAvailable(date string, hour int) bool {
	for _, h := range p.goal.AvailabilityFor(date) {
		if h == hour {
			return true
		}
	}
	return false
}

func (p *GridPane) inGoalRange(date string) bool {
	return p.goal != nil && date >= p.goal.StartDate && date <= p.goal.EndDate
}

// View renders the grid pane.
func (p *GridPane) View() string {
	var b strings.Builder

	title := "WEEK"
	if p.goal != nil {
		title = "WEEK · " + runewidth.Truncate(p.goal.Title, max(10, p.width-12), "..")
	}
	b.WriteString(p.styles.PaneTitleStyle.Render(title))
	b.WriteString("\n")

	if p.goal == nil {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No active goal. Pick one in the Goals pane."))
		return p.frame(b.String())
	}

	weekStart := p.weekStart()
	weekEnd := weekStart.AddDate(0, 0, 6)
	rangeLine := p.styles.StatLabelStyle.Render(fmt.Sprintf("  %s – %s",
		weekStart.Format("Jan 2"), weekEnd.Format("Jan 2, 2006")))
	b.WriteString(rangeLine)
	b.WriteString("\n\n")

	b.WriteString(p.renderGrid(weekStart))

	if p.editing {
		b.WriteString("\n")
		label := "plan"
		if p.editKind == noteAccomplishment {
			label = "done"
		}
		prompt := p.styles.InputPromptStyle.Render(fmt.Sprintf("  %s %s %s: ",
			p.cursorDate(), dateutil.FormatHour(p.cursorHour), label))
		b.WriteString(prompt + p.input.View())
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(p.renderCellInfo())
	}

	return p.frame(b.String())
}

func (p *GridPane) frame(content string) string {
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(content)
}

var dayHeaders = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// renderGrid draws the hour × day grid, windowed vertically around the
// cursor hour.
func (p *GridPane) renderGrid(weekStart time.Time) string {
	var b strings.Builder

	dates := make([]string, 7)
	for d := 0; d < 7; d++ {
		dates[d] = dateutil.FormatDate(weekStart.AddDate(0, 0, d))
	}

	// Header row
	b.WriteString("        ")
	for d, name := range dayHeaders {
		label := fmt.Sprintf("%-5s", name)
		if d == p.cursorDay && p.focused {
			b.WriteString(p.styles.GridHeaderStyle.Render(label))
		} else {
			b.WriteString(p.styles.GridHourStyle.Render(label))
		}
	}
	b.WriteString("\n")

	// Visible hour window around the cursor.
	maxRows := p.height - 10
	if maxRows < 6 {
		maxRows = 6
	}
	if maxRows > 24 {
		maxRows = 24
	}
	startHour := 0
	if p.cursorHour >= maxRows {
		startHour = p.cursorHour - maxRows + 1
	}

	now := p.store.Now()
	for hour := startHour; hour < startHour+maxRows && hour < 24; hour++ {
		b.WriteString(p.styles.GridHourStyle.Render(fmt.Sprintf("  %s ", dateutil.FormatHour(hour))))
		for d := 0; d < 7; d++ {
			b.WriteString(p.renderCell(dates[d], hour, d, now))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderCell draws one grid cell, 5 columns wide: availability marker plus
// note flags.
func (p *GridPane) renderCell(date string, hour, day int, now time.Time) string {
	var marker string
	switch {
	case !p.inGoalRange(date):
		marker = " "
	case p.hourAvailable(date, hour):
		marker = "■"
	default:
		marker = "·"
	}

	flags := ""
	if p.goal.Plans[date][hour] != "" {
		flags += "*"
	}
	if p.goal.Accomplishments[date][hour] != "" {
		flags += "+"
	}
	cell := fmt.Sprintf("%-4s", marker+flags)

	isCursor := p.focused && day == p.cursorDay && hour == p.cursorHour
	switch {
	case isCursor:
		return p.styles.CellCursorStyle.Render(cell) + " "
	case dateutil.IsHourCurrent(date, hour, now):
		return p.styles.CellCurrentStyle.Render(cell) + " "
	case dateutil.IsHourPast(date, hour, now):
		return p.styles.CellPastStyle.Render(cell) + " "
	case marker == "■":
		return p.styles.CellAvailableStyle.Render(cell) + " "
	default:
		return p.styles.CellEmptyStyle.Render(cell) + " "
	}
}

// renderCellInfo shows the notes recorded at the cursor cell.
func (p *GridPane) renderCellInfo() string {
	date := p.cursorDate()
	var b strings.Builder

	header := fmt.Sprintf("  %s %s", dateutil.FormatReadableDate(date), dateutil.FormatHour(p.cursorHour))
	b.WriteString(p.styles.StatValueStyle.Render(header))
	b.WriteString("\n")

	maxNote := max(10, p.width-14)
	if plan := p.goal.Plans[date][p.cursorHour]; plan != "" {
		b.WriteString(p.styles.StatLabelStyle.Render("  plan: "))
		b.WriteString(runewidth.Truncate(plan, maxNote, ".."))
		b.WriteString("\n")
	}
	if done := p.goal.Accomplishments[date][p.cursorHour]; done != "" {
		b.WriteString(p.styles.StatLabelStyle.Render("  done: "))
		b.WriteString(runewidth.Truncate(done, maxNote, ".."))
		b.WriteString("\n")
	}
	return b.String()
}
