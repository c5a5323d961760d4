package fsx

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// AtomicWrite writes content to a hidden temp sibling and renames it
// into place, so the target path is never observed half-written. Parent
// directories are created as needed. A temp file may be left behind if
// the process dies between write and rename.
func AtomicWrite(path string, content []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp := filepath.Join(dir, "."+filepath.Base(path)+".tmp")
	if err := os.WriteFile(tmp, content, mode); err != nil {
		return err
	}
	if f, err := os.Open(tmp); err == nil {
		_ = f.Sync()
		_ = f.Close()
	}
	if err := os.Rename(tmp, path); err != nil {
		if runtime.GOOS == "windows" {
			return renameWindows(tmp, path, err)
		}
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// renameWindows retries the rename a few times, removing the target
// first. Windows refuses to rename over an existing or locked file.
func renameWindows(tmp, path string, first error) error {
	last := first
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(path); err == nil {
			_ = os.Remove(path)
		}
		if err := os.Rename(tmp, path); err == nil {
			return nil
		} else {
			last = err
		}
		time.Sleep(50 * time.Millisecond)
	}
	_ = os.Remove(tmp)
	return last
}
