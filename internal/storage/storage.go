// Package storage persists the application state as one JSON record in the
// data directory. Writes are atomic with a best-effort backup; corrupted
// files are recovered from the backup or moved aside and reset.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focusedtime/internal/fsutil"
	"focusedtime/internal/state"
)

const (
	// StateFile is the single record holding the whole application state.
	StateFile = "state.json"

	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// Storage handles reading and writing the state record.
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating the directory if
// needed.
func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Storage{dataDir: dataDir}, nil
}

// DataDir returns the data directory path.
func (s *Storage) DataDir() string {
	return s.dataDir
}

// StatePath returns the full path of the state record.
func (s *Storage) StatePath() string {
	return filepath.Join(s.dataDir, StateFile)
}

// LoadState reads the persisted state. A missing file yields the empty
// initial state with no error. A corrupt file is recovered from the .bak
// copy when possible, otherwise moved aside and reset; both cases return
// the best state available together with an error describing what
// happened, so callers can show a message and keep running.
func (s *Storage) LoadState() (state.AppState, error) {
	path := s.StatePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return state.NewAppState(), nil
		}
		return state.NewAppState(), fmt.Errorf("read %s: %w", StateFile, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.recoverCorrupt(fmt.Errorf("%s is empty", StateFile))
	}
	st, err := DecodeState(data)
	if err != nil {
		return s.recoverCorrupt(err)
	}
	return st, nil
}

// SaveState writes the state record atomically, keeping a .bak of the
// previous contents. The in-memory state stays authoritative: a failed save
// is reported, never rolled back.
func (s *Storage) SaveState(st state.AppState) error {
	data, err := EncodeState(st)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", StateFile, err)
	}

	path := s.StatePath()
	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", StateFile, err)
	}
	return nil
}

func (s *Storage) recoverCorrupt(cause error) (state.AppState, error) {
	path := s.StatePath()

	// Try the backup first.
	if bakData, err := os.ReadFile(path + ".bak"); err == nil {
		if st, err := DecodeState(bakData); err == nil {
			s.moveCorruptAside(path)
			_ = s.SaveState(st)
			return st, fmt.Errorf("%s (recovered from %s.bak)", cause.Error(), StateFile)
		}
	}

	// No usable backup: preserve the broken file (best effort) and reset.
	corruptPath := s.moveCorruptAside(path)
	st := state.NewAppState()
	_ = s.SaveState(st)
	return st, fmt.Errorf("%s (reset to empty state; original moved to %s)", cause.Error(), corruptPath)
}

func (s *Storage) moveCorruptAside(path string) string {
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
	_ = os.Rename(path, corruptPath)
	return corruptPath
}

// rawState mirrors the persisted layout with raw fields so DecodeState can
// check structure before committing to types.
type rawState struct {
	Goals     json.RawMessage `json:"goals"`
	Reminders json.RawMessage `json:"reminders"`
}

// DecodeState parses and structurally validates a state record: goals must
// be a list and reminders an object carrying a boolean "enabled" and a
// numeric "minutesBefore". Anything else is rejected, leaving the caller's
// current state untouched.
func DecodeState(data []byte) (state.AppState, error) {
	var raw rawState
	if err := json.Unmarshal(data, &raw); err != nil {
		return state.AppState{}, fmt.Errorf("parse state: %w", err)
	}
	goalsRaw := bytes.TrimSpace(raw.Goals)
	if len(goalsRaw) == 0 || goalsRaw[0] != '[' {
		return state.AppState{}, fmt.Errorf("invalid state: goals must be a list")
	}
	if len(bytes.TrimSpace(raw.Reminders)) == 0 {
		return state.AppState{}, fmt.Errorf("invalid state: missing reminders")
	}

	var goals []state.Goal
	if err := json.Unmarshal(goalsRaw, &goals); err != nil {
		return state.AppState{}, fmt.Errorf("invalid state: goals is not a list: %w", err)
	}

	var reminderFields map[string]json.RawMessage
	if err := json.Unmarshal(raw.Reminders, &reminderFields); err != nil {
		return state.AppState{}, fmt.Errorf("invalid state: reminders is not an object: %w", err)
	}
	var enabled bool
	if err := json.Unmarshal(reminderFields["enabled"], &enabled); err != nil {
		return state.AppState{}, fmt.Errorf("invalid state: reminders.enabled must be a boolean")
	}
	var minutes float64
	if err := json.Unmarshal(reminderFields["minutesBefore"], &minutes); err != nil {
		return state.AppState{}, fmt.Errorf("invalid state: reminders.minutesBefore must be a number")
	}

	var st state.AppState
	if err := json.Unmarshal(data, &st); err != nil {
		return state.AppState{}, fmt.Errorf("parse state: %w", err)
	}
	return st, nil
}

// EncodeState serializes a state record in the interchange layout.
func EncodeState(st state.AppState) ([]byte, error) {
	return json.MarshalIndent(st, "", "  ")
}
