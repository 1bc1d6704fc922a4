// Package config handles configuration loading and defaults for FocusedTime.
// Configuration is read from XDG-compliant paths (typically
// ~/.config/focusedtime/config.yaml).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"focusedtime/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. Reminder settings
// (enabled, lead time) are deliberately absent: they live in the state
// record so that exports carry them along.
type Config struct {
	// DataDir overrides the default data directory (~/.focusedtime)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Notifications configures desktop notification behavior
	Notifications NotificationConfig `yaml:"notifications,omitempty"`
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Sound plays the system alert sound with each reminder
	Sound bool `yaml:"sound,omitempty"`
}

// ThemeConfig defines color settings (hex, e.g. "#FF5733").
type ThemeConfig struct {
	// Primary color for focused elements
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights and the active goal marker
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text and past hours
	Muted string `yaml:"muted,omitempty"`

	// Available color for selected availability cells
	Available string `yaml:"available,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit     string `yaml:"quit,omitempty"`      // default: "q,ctrl+c"
	Help     string `yaml:"help,omitempty"`      // default: "?"
	NextPane string `yaml:"next_pane,omitempty"` // default: "tab"
	Pane1    string `yaml:"pane_1,omitempty"`    // default: "1"
	Pane2    string `yaml:"pane_2,omitempty"`    // default: "2"
	Pane3    string `yaml:"pane_3,omitempty"`    // default: "3"

	// Navigation keys
	Up    string `yaml:"up,omitempty"`    // default: "k,up"
	Down  string `yaml:"down,omitempty"`  // default: "j,down"
	Left  string `yaml:"left,omitempty"`  // default: "h,left"
	Right string `yaml:"right,omitempty"` // default: "l,right"

	// Goal keys
	AddGoal    string `yaml:"add_goal,omitempty"`    // default: "a"
	EditGoal   string `yaml:"edit_goal,omitempty"`   // default: "e"
	DeleteGoal string `yaml:"delete_goal,omitempty"` // default: "x"
	SelectGoal string `yaml:"select_goal,omitempty"` // default: "enter,space"

	// Grid keys
	ToggleHour         string `yaml:"toggle_hour,omitempty"`         // default: "space"
	EditPlan           string `yaml:"edit_plan,omitempty"`           // default: "p"
	EditAccomplishment string `yaml:"edit_accomplishment,omitempty"` // default: "d"
	PrevWeek           string `yaml:"prev_week,omitempty"`           // default: "["
	NextWeek           string `yaml:"next_week,omitempty"`           // default: "]"

	// Dashboard keys
	ToggleReminders string `yaml:"toggle_reminders,omitempty"` // default: "r"
	CycleLeadTime   string `yaml:"cycle_lead_time,omitempty"`  // default: "m"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions shows confirmation dialogs before deleting goals
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// NarrowLayoutThreshold is the terminal width below which to use stacked layout
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 100
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Primary:   "#7C3AED", // Violet
			Accent:    "#10B981", // Emerald
			Muted:     "#6B7280", // Gray
			Available: "#3B82F6", // Blue
		},
		Keys: KeysConfig{
			// Empty strings mean use built-in defaults
		},
		UX: UXConfig{
			ConfirmDeletions:      true,
			NarrowLayoutThreshold: 100,
		},
		Notifications: NotificationConfig{
			Sound: false,
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focusedtime"
	}
	return filepath.Join(home, ".focusedtime")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "focusedtime")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "focusedtime")
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; merge conservatively if this fails

	cfg.merge(&userCfg, &doc)
	return cfg, nil
}

// mergeNonEmpty applies non-empty string and positive int values from other.
// Booleans need presence-aware merging and are handled in merge.
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	if other.Theme.Primary != "" {
		c.Theme.Primary = other.Theme.Primary
	}
	if other.Theme.Accent != "" {
		c.Theme.Accent = other.Theme.Accent
	}
	if other.Theme.Muted != "" {
		c.Theme.Muted = other.Theme.Muted
	}
	if other.Theme.Available != "" {
		c.Theme.Available = other.Theme.Available
	}

	mergeKeys(&c.Keys, &other.Keys)

	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
}

func mergeKeys(dst, src *KeysConfig) {
	pairs := []struct {
		d *string
		s string
	}{
		{&dst.Quit, src.Quit},
		{&dst.Help, src.Help},
		{&dst.NextPane, src.NextPane},
		{&dst.Pane1, src.Pane1},
		{&dst.Pane2, src.Pane2},
		{&dst.Pane3, src.Pane3},
		{&dst.Up, src.Up},
		{&dst.Down, src.Down},
		{&dst.Left, src.Left},
		{&dst.Right, src.Right},
		{&dst.AddGoal, src.AddGoal},
		{&dst.EditGoal, src.EditGoal},
		{&dst.DeleteGoal, src.DeleteGoal},
		{&dst.SelectGoal, src.SelectGoal},
		{&dst.ToggleHour, src.ToggleHour},
		{&dst.EditPlan, src.EditPlan},
		{&dst.EditAccomplishment, src.EditAccomplishment},
		{&dst.PrevWeek, src.PrevWeek},
		{&dst.NextWeek, src.NextWeek},
		{&dst.ToggleReminders, src.ToggleReminders},
		{&dst.CycleLeadTime, src.CycleLeadTime},
		{&dst.Confirm, src.Confirm},
		{&dst.Cancel, src.Cancel},
	}
	for _, p := range pairs {
		if p.s != "" {
			*p.d = p.s
		}
	}
}

func (c *Config) merge(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Booleans can only be merged when the YAML actually carries the key.
	if yamlHasPath(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if yamlHasPath(doc, "notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path, expanding a leading ~.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}

	if c.DataDir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataDir
	}
	if strings.HasPrefix(c.DataDir, "~/") || strings.HasPrefix(c.DataDir, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, c.DataDir[2:])
		}
	}
	return c.DataDir
}
