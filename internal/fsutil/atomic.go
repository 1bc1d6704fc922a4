package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// WriteFileAtomic replaces the file at path with data. The data is first
// written and fsynced to a temp file in the same directory, which is then
// renamed over path, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := replace(tmpPath, path); err != nil {
		return err
	}
	committed = true

	syncDir(dir)
	return nil
}

// replace renames src over dst. Rename is atomic on Unix; on Windows it
// refuses to overwrite, so the destination is removed first (best effort,
// not atomic).
func replace(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if runtime.GOOS == "windows" {
		if _, statErr := os.Stat(dst); statErr == nil {
			if rmErr := os.Remove(dst); rmErr == nil {
				if retryErr := os.Rename(src, dst); retryErr == nil {
					return nil
				}
			}
		}
	}
	return fmt.Errorf("rename %s -> %s: %w", src, dst, err)
}

// BestEffortBackup copies the current contents of path to path+".bak".
// Missing files and write failures are ignored: the backup must never block
// the save it accompanies.
func BestEffortBackup(path string, perm os.FileMode) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = WriteFileAtomic(path+".bak", data, perm)
}

func syncDir(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	defer f.Close()
	_ = f.Sync()
}
