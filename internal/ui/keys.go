// Package ui provides terminal user interface components for FocusedTime.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and customization.
package ui

import (
	"strings"

	"focusedtime/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	NextPane key.Binding
	Pane1    key.Binding
	Pane2    key.Binding
	Pane3    key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		NextPane: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextPane, "tab")...),
			key.WithHelp("tab", "next pane"),
		),
		Pane1: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane1, "1")...),
			key.WithHelp("1", "goals"),
		),
		Pane2: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane2, "2")...),
			key.WithHelp("2", "week"),
		),
		Pane3: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane3, "3")...),
			key.WithHelp("3", "dashboard"),
		),
	}
}

// NavigationKeyMap defines keys for cursor movement.
type NavigationKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Left, "h", "left")...),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Right, "l", "right")...),
			key.WithHelp("l/→", "right"),
		),
	}
}

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// GoalKeyMap defines keys for the goals pane.
type GoalKeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Select key.Binding
	NavigationKeyMap
}

// NewGoalKeyMap creates goal pane key bindings from config.
func NewGoalKeyMap(cfg *config.KeysConfig) GoalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GoalKeyMap{
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.AddGoal, "a")...),
			key.WithHelp("a", "add goal"),
		),
		Edit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.EditGoal, "e")...),
			key.WithHelp("e", "edit goal"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.DeleteGoal, "x")...),
			key.WithHelp("x", "delete"),
		),
		Select: key.NewBinding(
			key.WithKeys(parseKeys(cfg.SelectGoal, "enter", " ")...),
			key.WithHelp("enter", "set active"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the goals pane (implements help.KeyMap).
func (k GoalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Select, k.Delete, k.Down}
}

// FullHelp returns the full help for the goals pane (implements help.KeyMap).
func (k GoalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Edit, k.Delete, k.Select},
		{k.Up, k.Down},
	}
}

// GridKeyMap defines keys for the week grid pane.
type GridKeyMap struct {
	Toggle             key.Binding
	EditPlan           key.Binding
	EditAccomplishment key.Binding
	PrevWeek           key.Binding
	NextWeek           key.Binding
	NavigationKeyMap
}

// NewGridKeyMap creates grid pane key bindings from config.
func NewGridKeyMap(cfg *config.KeysConfig) GridKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GridKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleHour, " ")...),
			key.WithHelp("space", "toggle hour"),
		),
		EditPlan: key.NewBinding(
			key.WithKeys(parseKeys(cfg.EditPlan, "p")...),
			key.WithHelp("p", "edit plan"),
		),
		EditAccomplishment: key.NewBinding(
			key.WithKeys(parseKeys(cfg.EditAccomplishment, "d")...),
			key.WithHelp("d", "log done"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys(parseKeys(cfg.PrevWeek, "[")...),
			key.WithHelp("[", "prev week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextWeek, "]")...),
			key.WithHelp("]", "next week"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the grid pane (implements help.KeyMap).
func (k GridKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.EditPlan, k.EditAccomplishment, k.NextWeek}
}

// FullHelp returns the full help for the grid pane (implements help.KeyMap).
func (k GridKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.EditPlan, k.EditAccomplishment},
		{k.Up, k.Down, k.Left, k.Right, k.PrevWeek, k.NextWeek},
	}
}

// DashboardKeyMap defines keys for the dashboard pane.
type DashboardKeyMap struct {
	ToggleReminders key.Binding
	CycleLeadTime   key.Binding
}

// NewDashboardKeyMap creates dashboard pane key bindings from config.
func NewDashboardKeyMap(cfg *config.KeysConfig) DashboardKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return DashboardKeyMap{
		ToggleReminders: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleReminders, "r")...),
			key.WithHelp("r", "reminders on/off"),
		),
		CycleLeadTime: key.NewBinding(
			key.WithKeys(parseKeys(cfg.CycleLeadTime, "m")...),
			key.WithHelp("m", "lead time"),
		),
	}
}

// ShortHelp returns the short help for the dashboard pane (implements help.KeyMap).
func (k DashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleReminders, k.CycleLeadTime}
}

// FullHelp returns the full help for the dashboard pane (implements help.KeyMap).
func (k DashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.ToggleReminders, k.CycleLeadTime}}
}

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
