package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width  int
	height int
	styles *Styles
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(styles *Styles) *HelpOverlay {
	return &HelpOverlay{styles: styles}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder

	b.WriteString(titleStyle.Render("FocusedTime - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Global"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Tab") + descStyle.Render("Switch pane") + "\n")
	b.WriteString(keyStyle.Render("1 / 2 / 3") + descStyle.Render("Jump to pane") + "\n")
	b.WriteString(keyStyle.Render("?") + descStyle.Render("Toggle help") + "\n")
	b.WriteString(keyStyle.Render("q") + descStyle.Render("Quit") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Goals"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("a") + descStyle.Render("Add goal") + "\n")
	b.WriteString(keyStyle.Render("e") + descStyle.Render("Edit goal") + "\n")
	b.WriteString(keyStyle.Render("Enter") + descStyle.Render("Set active goal") + "\n")
	b.WriteString(keyStyle.Render("x") + descStyle.Render("Delete goal") + "\n")
	b.WriteString(keyStyle.Render("j / k") + descStyle.Render("Navigate up/down") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Week Grid"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("h/j/k/l") + descStyle.Render("Move between cells") + "\n")
	b.WriteString(keyStyle.Render("Space") + descStyle.Render("Toggle availability") + "\n")
	b.WriteString(keyStyle.Render("p") + descStyle.Render("Edit plan") + "\n")
	b.WriteString(keyStyle.Render("d") + descStyle.Render("Log accomplishment") + "\n")
	b.WriteString(keyStyle.Render("[ / ]") + descStyle.Render("Previous/next week") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Dashboard"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("r") + descStyle.Render("Toggle reminders") + "\n")
	b.WriteString(keyStyle.Render("m") + descStyle.Render("Cycle lead time (5/10/15)") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Input Mode"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Enter") + descStyle.Render("Save / next field") + "\n")
	b.WriteString(keyStyle.Render("Esc") + descStyle.Render("Cancel") + "\n")

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, content)
}
