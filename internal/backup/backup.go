// Package backup manages timestamped snapshots of the FocusedTime state
// record, with restore and pruning.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"focusedtime/internal/fsutil"
	"focusedtime/internal/state"
	"focusedtime/internal/storage"
)

const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"
)

// Manager handles backup and restore of the state record. Each backup is a
// directory under <dataDir>/backups named by its creation timestamp, holding
// a copy of state.json plus a manifest.
type Manager struct {
	dataDir    string
	backupDir  string
	appVersion string
}

// Manifest describes one backup snapshot.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// Info summarizes a backup for listing.
type Info struct {
	Name      string
	Path      string
	CreatedAt time.Time
	Stats     map[string]int
}

func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
	}
}

// Create snapshots the current state record. Returns the backup name
// (timestamp format). Creating a backup when no state file exists yet is
// valid and produces an empty snapshot.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	// Millisecond suffix keeps rapid successive backups distinct.
	now := time.Now()
	name := fmt.Sprintf("%s_%03d", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
	backupPath := filepath.Join(m.backupDir, name)

	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	var files []string
	stats := make(map[string]int)

	srcPath := filepath.Join(m.dataDir, storage.StateFile)
	if data, err := os.ReadFile(srcPath); err == nil {
		dstPath := filepath.Join(backupPath, storage.StateFile)
		if err := fsutil.WriteFileAtomic(dstPath, data, 0600); err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("copy %s: %w", storage.StateFile, err)
		}
		files = append(files, storage.StateFile)
		if st, err := storage.DecodeState(data); err == nil {
			stats = stateStats(st)
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      files,
		Stats:      stats,
	}
	if err := writeManifest(filepath.Join(backupPath, ManifestFile), manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("write manifest: %w", err)
	}

	return name, nil
}

// List returns all backups, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.readInfo(entry.Name())
		if err != nil {
			continue // skip directories that are not backups
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Restore replaces the current state record with the named backup's copy.
// A safety backup of the current state is taken first, and the snapshot is
// structurally validated before it touches the live file.
func (m *Manager) Restore(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	srcPath := filepath.Join(backupPath, storage.StateFile)
	data, err := os.ReadFile(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %s holds no state record", name)
		}
		return fmt.Errorf("read backup %s: %w", name, err)
	}
	if _, err := storage.DecodeState(data); err != nil {
		return fmt.Errorf("backup %s is not a valid state record: %w", name, err)
	}

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("create safety backup: %w", err)
	}

	dstPath := filepath.Join(m.dataDir, storage.StateFile)
	if err := fsutil.WriteFileAtomic(dstPath, data, 0600); err != nil {
		return fmt.Errorf("restore %s (safety backup: %s): %w", storage.StateFile, safetyName, err)
	}
	return nil
}

// RestoreLatest restores from the most recent backup.
func (m *Manager) RestoreLatest() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups available")
	}
	return m.Restore(backups[0].Name)
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}
	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}
	return os.RemoveAll(backupPath)
}

// Prune removes old backups, keeping only the keepCount most recent.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keepCount:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// Get returns information about a specific backup.
func (m *Manager) Get(name string) (*Info, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(m.backupDir, name)); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}
	return m.readInfo(name)
}

func (m *Manager) readInfo(name string) (*Info, error) {
	backupPath := filepath.Join(m.backupDir, name)

	var manifest Manifest
	data, err := os.ReadFile(filepath.Join(backupPath, ManifestFile))
	if err == nil {
		err = json.Unmarshal(data, &manifest)
	}
	if err != nil {
		// Fall back to the timestamp encoded in the directory name.
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
		manifest.Stats = make(map[string]int)
	}

	return &Info{
		Name:      name,
		Path:      backupPath,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// stateStats summarizes a state record for the manifest.
func stateStats(st state.AppState) map[string]int {
	stats := map[string]int{"goals": len(st.Goals)}
	blocks, plans, accomplishments := 0, 0, 0
	for _, g := range st.Goals {
		for _, day := range g.Availability {
			blocks += len(day.Hours)
		}
		for _, hours := range g.Plans {
			plans += len(hours)
		}
		for _, hours := range g.Accomplishments {
			accomplishments += len(hours)
		}
	}
	stats["availability_blocks"] = blocks
	stats["plans"] = plans
	stats["accomplishments"] = accomplishments
	return stats
}

func writeManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

// parseBackupName parses a backup directory name into its timestamp.
// Accepts 2006-01-02_150405 with an optional _XXX millisecond suffix.
func parseBackupName(name string) (time.Time, error) {
	if len(name) == 21 {
		baseTime, err := time.Parse("2006-01-02_150405", name[:17])
		if err != nil {
			return time.Time{}, err
		}
		if name[17] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup name format")
		}
		ms, err := strconv.Atoi(name[18:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid millisecond suffix")
		}
		return baseTime.Add(time.Duration(ms) * time.Millisecond), nil
	}
	return time.Parse("2006-01-02_150405", name)
}
