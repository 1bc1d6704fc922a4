package config

import (
	"os"
	"path/filepath"
	"testing"
)

// setTestConfigHome points XDG_CONFIG_HOME at a temp dir for the test.
func setTestConfigHome(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	return tempDir
}

func writeTestConfig(t *testing.T, tempDir, content string) {
	t.Helper()
	dir := filepath.Join(tempDir, "focusedtime")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
	if cfg.Theme.Primary == "" || cfg.Theme.Accent == "" || cfg.Theme.Available == "" {
		t.Errorf("theme defaults incomplete: %+v", cfg.Theme)
	}
	if !cfg.UX.ConfirmDeletions {
		t.Error("ConfirmDeletions should default to true")
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	setTestConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Theme.Primary != "#7C3AED" {
		t.Errorf("Theme.Primary = %q, want #7C3AED", cfg.Theme.Primary)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	tempDir := setTestConfigHome(t)
	writeTestConfig(t, tempDir, `
data_dir: /custom/data
theme:
  primary: "#FF0000"
  available: "#00FF00"
keys:
  toggle_hour: "t"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != "/custom/data" {
		t.Errorf("DataDir = %q, want /custom/data", cfg.DataDir)
	}
	if cfg.Theme.Primary != "#FF0000" {
		t.Errorf("Theme.Primary = %q, want #FF0000", cfg.Theme.Primary)
	}
	if cfg.Theme.Available != "#00FF00" {
		t.Errorf("Theme.Available = %q, want #00FF00", cfg.Theme.Available)
	}
	if cfg.Keys.ToggleHour != "t" {
		t.Errorf("Keys.ToggleHour = %q, want t", cfg.Keys.ToggleHour)
	}

	// Untouched keys keep their defaults.
	if cfg.Theme.Muted != "#6B7280" {
		t.Errorf("Theme.Muted = %q, want #6B7280", cfg.Theme.Muted)
	}
}

func TestMergeNonEmpty(t *testing.T) {
	base := Default()
	override := &Config{
		DataDir: "/override/path",
		Theme:   ThemeConfig{Primary: "#CUSTOM"},
	}

	base.mergeNonEmpty(override)

	if base.DataDir != "/override/path" {
		t.Errorf("DataDir = %q, want /override/path", base.DataDir)
	}
	if base.Theme.Primary != "#CUSTOM" {
		t.Errorf("Theme.Primary = %q, want #CUSTOM", base.Theme.Primary)
	}
	if base.Theme.Accent != "#10B981" {
		t.Errorf("Theme.Accent = %q, want the default", base.Theme.Accent)
	}
}

func TestLoad_MissingBoolKeysDoNotClobberDefaults(t *testing.T) {
	tempDir := setTestConfigHome(t)
	// Only touches theme; the UX booleans are absent.
	writeTestConfig(t, tempDir, `
theme:
  primary: "#FF0000"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.UX.ConfirmDeletions {
		t.Errorf("UX.ConfirmDeletions = false, want default true")
	}
}

func TestLoad_ExplicitFalseOverridesDefault(t *testing.T) {
	tempDir := setTestConfigHome(t)
	writeTestConfig(t, tempDir, `
ux:
  confirm_deletions: false
notifications:
  sound: true
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UX.ConfirmDeletions {
		t.Error("UX.ConfirmDeletions = true, want explicit false")
	}
	if !cfg.Notifications.Sound {
		t.Error("Notifications.Sound = false, want explicit true")
	}
}

func TestGetDataDir(t *testing.T) {
	cfg := &Config{DataDir: "/custom/path"}
	if got := cfg.GetDataDir(); got != "/custom/path" {
		t.Errorf("GetDataDir() = %q, want /custom/path", got)
	}

	cfg = &Config{}
	if got := cfg.GetDataDir(); filepath.Base(got) != ".focusedtime" {
		t.Errorf("GetDataDir() = %q, want to end with .focusedtime", got)
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		cfg = &Config{DataDir: "~"}
		if got := cfg.GetDataDir(); got != home {
			t.Errorf("GetDataDir() = %q, want %q", got, home)
		}
		cfg = &Config{DataDir: "~/mydata"}
		if got := cfg.GetDataDir(); got != filepath.Join(home, "mydata") {
			t.Errorf("GetDataDir() = %q, want %q", got, filepath.Join(home, "mydata"))
		}
	}
}

func TestSave(t *testing.T) {
	tempDir := setTestConfigHome(t)

	cfg := Default()
	cfg.DataDir = "/saved/path"
	cfg.Theme.Primary = "#SAVED"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(tempDir, "focusedtime", "config.yaml")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DataDir != "/saved/path" {
		t.Errorf("loaded DataDir = %q, want /saved/path", loaded.DataDir)
	}
	if loaded.Theme.Primary != "#SAVED" {
		t.Errorf("loaded Theme.Primary = %q, want #SAVED", loaded.Theme.Primary)
	}
}
