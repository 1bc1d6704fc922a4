package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"focusedtime/internal/state"
	"focusedtime/internal/storage"
)

// createTestState writes a populated state record into dataDir.
func createTestState(t *testing.T, dataDir string) state.AppState {
	t.Helper()

	st := state.NewAppState()
	st.Goals = []state.Goal{
		{
			ID:                   "g1",
			Title:                "Learn Go",
			StartDate:            "2025-01-01",
			EndDate:              "2025-03-31",
			TemplateAvailability: map[int][]int{1: {9, 10}},
			Availability: []state.Availability{
				{Date: "2025-01-06", Hours: []int{9, 10}},
				{Date: "2025-01-13", Hours: []int{9}},
			},
			Plans:           map[string]map[int]string{"2025-01-06": {9: "outline"}},
			Accomplishments: map[string]map[int]string{"2025-01-06": {9: "done", 10: "half"}},
		},
	}
	st.ActiveGoalID = "g1"

	data, err := storage.EncodeState(st)
	if err != nil {
		t.Fatalf("failed to encode state: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, storage.StateFile), data, 0600); err != nil {
		t.Fatalf("failed to write state file: %v", err)
	}
	return st
}

func TestCreate(t *testing.T) {
	dataDir := t.TempDir()
	createTestState(t, dataDir)
	m := NewManager(dataDir, "test")

	name, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if name == "" {
		t.Fatal("Create() returned empty name")
	}

	backupPath := filepath.Join(dataDir, BackupsDir, name)
	if _, err := os.Stat(filepath.Join(backupPath, storage.StateFile)); err != nil {
		t.Errorf("backup missing state file: %v", err)
	}

	info, err := m.Get(name)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if info.Stats["goals"] != 1 {
		t.Errorf("stats[goals] = %d, want 1", info.Stats["goals"])
	}
	if info.Stats["availability_blocks"] != 3 {
		t.Errorf("stats[availability_blocks] = %d, want 3", info.Stats["availability_blocks"])
	}
	if info.Stats["plans"] != 1 || info.Stats["accomplishments"] != 2 {
		t.Errorf("stats = %v", info.Stats)
	}
}

func TestCreate_NoStateFile(t *testing.T) {
	dataDir := t.TempDir()
	m := NewManager(dataDir, "test")

	name, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	info, err := m.Get(name)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(info.Stats) != 0 {
		t.Errorf("stats = %v, want empty for empty snapshot", info.Stats)
	}
}

func TestList(t *testing.T) {
	dataDir := t.TempDir()
	createTestState(t, dataDir)
	m := NewManager(dataDir, "test")

	// No backups yet.
	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("len(backups) = %d, want 0", len(backups))
	}

	first, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}

	backups, err = m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("len(backups) = %d, want 2", len(backups))
	}
	// Newest first.
	if backups[0].Name != second || backups[1].Name != first {
		t.Errorf("order = [%s %s], want [%s %s]", backups[0].Name, backups[1].Name, second, first)
	}
}

func TestRestore(t *testing.T) {
	dataDir := t.TempDir()
	createTestState(t, dataDir)
	m := NewManager(dataDir, "test")

	name, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}

	// Wipe the live state, then restore.
	empty, err := storage.EncodeState(state.NewAppState())
	if err != nil {
		t.Fatal(err)
	}
	statePath := filepath.Join(dataDir, storage.StateFile)
	if err := os.WriteFile(statePath, empty, 0600); err != nil {
		t.Fatal(err)
	}

	if err := m.Restore(name); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	data, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatal(err)
	}
	st, err := storage.DecodeState(data)
	if err != nil {
		t.Fatalf("restored state not decodable: %v", err)
	}
	if len(st.Goals) != 1 || st.Goals[0].ID != "g1" {
		t.Errorf("restored goals = %+v", st.Goals)
	}

	// Restore must have left a safety backup behind.
	backups, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("len(backups) = %d, want 2 (original + safety)", len(backups))
	}
}

func TestRestore_InvalidSnapshot(t *testing.T) {
	dataDir := t.TempDir()
	createTestState(t, dataDir)
	m := NewManager(dataDir, "test")

	name, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}

	// Corrupt the snapshot; restore must refuse and leave the live state alone.
	snapshotPath := filepath.Join(dataDir, BackupsDir, name, storage.StateFile)
	if err := os.WriteFile(snapshotPath, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := m.Restore(name); err == nil {
		t.Fatal("Restore() error = nil, want rejection of invalid snapshot")
	}

	data, err := os.ReadFile(filepath.Join(dataDir, storage.StateFile))
	if err != nil {
		t.Fatal(err)
	}
	if st, err := storage.DecodeState(data); err != nil || len(st.Goals) != 1 {
		t.Errorf("live state was disturbed: goals=%d err=%v", len(st.Goals), err)
	}
}

func TestRestoreLatest(t *testing.T) {
	dataDir := t.TempDir()
	m := NewManager(dataDir, "test")

	if err := m.RestoreLatest(); err == nil {
		t.Error("RestoreLatest() error = nil, want error with no backups")
	}

	createTestState(t, dataDir)
	if _, err := m.Create(); err != nil {
		t.Fatal(err)
	}
	if err := m.RestoreLatest(); err != nil {
		t.Errorf("RestoreLatest() error = %v", err)
	}
}

func TestDelete(t *testing.T) {
	dataDir := t.TempDir()
	createTestState(t, dataDir)
	m := NewManager(dataDir, "test")

	name, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Delete(name); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, BackupsDir, name)); !os.IsNotExist(err) {
		t.Error("backup directory still exists after Delete()")
	}

	if err := m.Delete(name); err == nil {
		t.Error("Delete() of missing backup error = nil, want error")
	}
}

func TestDelete_InvalidName(t *testing.T) {
	m := NewManager(t.TempDir(), "test")

	for _, name := range []string{"", "../escape", "not-a-timestamp", "2025-01-01_120000/.."} {
		if err := m.Delete(name); err == nil {
			t.Errorf("Delete(%q) error = nil, want validation error", name)
		}
	}
}

func TestPrune(t *testing.T) {
	dataDir := t.TempDir()
	createTestState(t, dataDir)
	m := NewManager(dataDir, "test")

	var names []string
	for i := 0; i < 4; i++ {
		name, err := m.Create()
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, name)
		time.Sleep(5 * time.Millisecond)
	}

	deleted, err := m.Prune(2)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("len(backups) = %d, want 2", len(backups))
	}
	// The two newest survive.
	if backups[0].Name != names[3] || backups[1].Name != names[2] {
		t.Errorf("survivors = [%s %s], want [%s %s]", backups[0].Name, backups[1].Name, names[3], names[2])
	}

	if _, err := m.Prune(-1); err == nil {
		t.Error("Prune(-1) error = nil, want error")
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"with milliseconds", "2025-06-10_143022_512", false},
		{"without milliseconds", "2025-06-10_143022", false},
		{"bad millisecond separator", "2025-06-10_143022x512", true},
		{"garbage", "latest", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseBackupName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseBackupName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
