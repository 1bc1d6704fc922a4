// Package ui provides terminal user interface components for FocusedTime.
package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"focusedtime/internal/config"
	"focusedtime/internal/dateutil"
	"focusedtime/internal/state"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// formStep identifies the field being edited in the add/edit goal form.
type formStep int

const (
	stepTitle formStep = iota
	stepStartDate
	stepEndDate
	stepTemplate
)

// GoalsPane handles the goal list display and interactions.
type GoalsPane struct {
	store   *state.Store
	goals   []state.Goal
	active  string
	cursor  int
	focused bool
	width   int
	height  int
	styles  *Styles

	// Add/edit form
	editing   bool
	editID    string // empty while adding
	step      formStep
	form      state.Goal
	input     textinput.Model
	formErr   string
	onFormErr func(string)

	keys      GoalKeyMap
	inputKeys InputKeyMap
}

// NewGoalsPane creates a new goals pane.
func NewGoalsPane(store *state.Store, styles *Styles, keyCfg *config.KeysConfig) *GoalsPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 40

	return &GoalsPane{
		store:     store,
		goals:     []state.Goal{},
		focused:   true,
		input:     ti,
		styles:    styles,
		keys:      NewGoalKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// setState refreshes the pane from a state snapshot.
func (p *GoalsPane) setState(st state.AppState) {
	p.goals = st.Goals
	p.active = st.ActiveGoalID
	if p.cursor >= len(p.goals) {
		p.cursor = max(0, len(p.goals)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *GoalsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-6)
}

// SetFocused sets whether this pane is focused.
func (p *GoalsPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsEditing reports whether the add/edit form is open.
func (p *GoalsPane) IsEditing() bool {
	return p.editing
}

// Selected returns the goal under the cursor, or nil.
func (p *GoalsPane) Selected() *state.Goal {
	if p.cursor < 0 || p.cursor >= len(p.goals) {
		return nil
	}
	return &p.goals[p.cursor]
}

// Update handles messages for the goals pane.
func (p *GoalsPane) Update(msg tea.Msg) tea.Cmd {
	if p.editing {
		return p.updateForm(msg)
	}

	if !p.focused {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.Down):
		if len(p.goals) > 0 {
			p.cursor = min(p.cursor+1, len(p.goals)-1)
		}

	case key.Matches(keyMsg, p.keys.Up):
		if len(p.goals) > 0 {
			p.cursor = max(p.cursor-1, 0)
		}

	case key.Matches(keyMsg, p.keys.Add):
		p.openForm(nil)
		return textinput.Blink

	case key.Matches(keyMsg, p.keys.Edit):
		if g := p.Selected(); g != nil {
			p.openForm(g)
			return textinput.Blink
		}

	case key.Matches(keyMsg, p.keys.Select):
		if g := p.Selected(); g != nil {
			p.store.Dispatch(state.SetActiveGoal{ID: g.ID})
			p.setState(p.store.Snapshot())
		}
	}

	return nil
}

// openForm starts the add form, or the edit form pre-filled from g.
func (p *GoalsPane) openForm(g *state.Goal) {
	p.editing = true
	p.step = stepTitle
	p.formErr = ""
	if g != nil {
		p.editID = g.ID
		p.form = g.Clone()
		p.input.SetValue(g.Title)
	} else {
		p.editID = ""
		p.form = state.Goal{}
		p.input.Reset()
	}
	p.input.Placeholder = "Goal title"
	p.input.Focus()
	p.input.CursorEnd()
}

func (p *GoalsPane) updateForm(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(keyMsg, p.inputKeys.Cancel):
		p.closeForm()
		return nil

	case key.Matches(keyMsg, p.inputKeys.Confirm):
		return p.advanceForm()
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// advanceForm validates the current field and moves to the next step,
// submitting on the last one.
func (p *GoalsPane) advanceForm() tea.Cmd {
	value := strings.TrimSpace(p.input.Value())
	p.formErr = ""

	switch p.step {
	case stepTitle:
		if value == "" {
			p.formErr = "title is required"
			return nil
		}
		p.form.Title = value
		p.step = stepStartDate
		p.setFormInput("Start date (YYYY-MM-DD)", p.form.StartDate)

	case stepStartDate:
		if _, err := dateutil.ParseDate(value); err != nil {
			p.formErr = "use YYYY-MM-DD"
			return nil
		}
		p.form.StartDate = value
		p.step = stepEndDate
		p.setFormInput("End date (YYYY-MM-DD)", p.form.EndDate)

	case stepEndDate:
		if _, err := dateutil.ParseDate(value); err != nil {
			p.formErr = "use YYYY-MM-DD"
			return nil
		}
		if value < p.form.StartDate {
			p.formErr = "end date precedes start date"
			return nil
		}
		p.form.EndDate = value
		p.step = stepTemplate
		p.setFormInput("Weekly hours, e.g. mon:9-12 wed:14-16", formatTemplate(p.form.TemplateAvailability))

	case stepTemplate:
		template, err := parseTemplate(value)
		if err != nil {
			p.formErr = err.Error()
			return nil
		}
		p.form.TemplateAvailability = template
		p.submitForm()
	}
	return nil
}

func (p *GoalsPane) setFormInput(placeholder, value string) {
	p.input.Placeholder = placeholder
	p.input.SetValue(value)
	p.input.CursorEnd()
}

func (p *GoalsPane) submitForm() {
	g := p.form
	if p.editID != "" {
		g.ID = p.editID
		p.store.Dispatch(state.UpdateGoal{Goal: g})
	} else {
		g.ID = state.NewGoalID()
		st := p.store.Dispatch(state.AddGoal{Goal: g})
		// A freshly added goal becomes active when nothing was focused yet.
		if st.ActiveGoalID == "" {
			p.store.Dispatch(state.SetActiveGoal{ID: g.ID})
		}
	}
	p.setState(p.store.Snapshot())
	p.closeForm()
}

func (p *GoalsPane) closeForm() {
	p.editing = false
	p.editID = ""
	p.formErr = ""
	p.input.Reset()
	p.input.Blur()
}

// View renders the goals pane.
func (p *GoalsPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("GOALS"))
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if p.editing {
		b.WriteString(p.renderForm())
	} else if len(p.goals) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No goals yet. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		b.WriteString(p.renderList())
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}

func (p *GoalsPane) renderList() string {
	var b strings.Builder

	maxGoals := p.height - 5
	if maxGoals < 3 {
		maxGoals = 5
	}
	startIdx := 0
	if p.cursor >= maxGoals {
		startIdx = p.cursor - maxGoals + 1
	}

	for i, g := range p.goals {
		if i < startIdx || i >= startIdx+maxGoals {
			continue
		}

		marker := p.styles.GoalMarker
		if g.ID == p.active {
			marker = p.styles.GoalActiveMarker
		}

		availableTextWidth := p.width - 8
		if availableTextWidth < 5 {
			availableTextWidth = 5
		}
		title := runewidth.Truncate(g.Title, availableTextWidth, "..")

		var line string
		if i == p.cursor && p.focused {
			line = p.styles.GoalSelectedStyle.Render(" " + marker + " " + title + " ")
		} else if g.ID == p.active {
			line = " " + marker + " " + p.styles.GoalActiveStyle.Render(title)
		} else {
			line = " " + marker + " " + p.styles.GoalInactiveStyle.Render(title)
		}
		b.WriteString(line)
		b.WriteString("\n")

		if i == p.cursor && p.focused {
			dates := p.styles.StatLabelStyle.Render(fmt.Sprintf("   %s → %s", g.StartDate, g.EndDate))
			b.WriteString(dates)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (p *GoalsPane) renderForm() string {
	var b strings.Builder

	labels := map[formStep]string{
		stepTitle:     "Title",
		stepStartDate: "Start date",
		stepEndDate:   "End date",
		stepTemplate:  "Weekly hours",
	}
	action := "New goal"
	if p.editID != "" {
		action = "Edit goal"
	}

	b.WriteString(p.styles.StatValueStyle.Render("  " + action))
	b.WriteString("\n\n")
	b.WriteString(p.styles.InputPromptStyle.Render("  " + labels[p.step] + ": "))
	b.WriteString(p.input.View())
	b.WriteString("\n")
	if p.formErr != "" {
		b.WriteString(p.styles.ErrorStyle.Render("  " + p.formErr))
		b.WriteString("\n")
	}
	return b.String()
}

var weekdayNames = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

// parseTemplate parses a weekly availability spec like
// "mon:9-12 wed:14-16,20" into weekday → hours. Ranges are
// inclusive-exclusive on the right edge to mirror "9-12 means 9,10,11".
// An empty spec is a goal with no template.
func parseTemplate(spec string) (map[int][]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	template := make(map[int][]int)
	for _, part := range strings.Fields(spec) {
		day, hoursSpec, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("%q: expected day:hours", part)
		}
		weekday, ok := weekdayNames[strings.ToLower(day)]
		if !ok {
			return nil, fmt.Errorf("unknown day %q", day)
		}

		set := make(map[int]bool)
		for _, h := range template[weekday] {
			set[h] = true
		}
		for _, seg := range strings.Split(hoursSpec, ",") {
			lo, hi, isRange := strings.Cut(seg, "-")
			start, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("%q: bad hour", seg)
			}
			end := start + 1
			if isRange {
				end, err = strconv.Atoi(strings.TrimSpace(hi))
				if err != nil {
					return nil, fmt.Errorf("%q: bad hour", seg)
				}
			}
			if start < 0 || start > 23 || end <= start || end > 24 {
				return nil, fmt.Errorf("%q: hours must fall in 0-23", seg)
			}
			for h := start; h < end; h++ {
				set[h] = true
			}
		}

		hours := make([]int, 0, len(set))
		for h := range set {
			hours = append(hours, h)
		}
		sort.Ints(hours)
		template[weekday] = hours
	}
	return template, nil
}

// formatTemplate renders a template back into the text syntax, for
// pre-filling the edit form.
func formatTemplate(template map[int][]int) string {
	if len(template) == 0 {
		return ""
	}
	names := []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

	days := make([]int, 0, len(template))
	for d := range template {
		days = append(days, d)
	}
	sort.Ints(days)

	var parts []string
	for _, d := range days {
		hours := template[d]
		if len(hours) == 0 || d < 0 || d > 6 {
			continue
		}

		var segs []string
		start := hours[0]
		prev := hours[0]
		flush := func() {
			if prev == start {
				segs = append(segs, strconv.Itoa(start))
			} else {
				segs = append(segs, fmt.Sprintf("%d-%d", start, prev+1))
			}
		}
		for _, h := range hours[1:] {
			if h != prev+1 {
				flush()
				start = h
			}
			prev = h
		}
		flush()
		parts = append(parts, names[d]+":"+strings.Join(segs, ","))
	}
	return strings.Join(parts, " ")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
