package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const backupTimestampLayout = "20060102-150405"

// Write persists a JSON artifact atomically: the value is encoded to a
// temporary file in the destination directory and renamed over the
// target. When the target already exists, its prior contents are
// snapshotted to <name>.<timestamp>.bak first; a failed snapshot
// aborts before anything destructive happens.
func Write(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := snapshot(path); err != nil {
			return fmt.Errorf("backup %s before overwrite: %w", path, err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmpName, path, err)
	}
	return nil
}

// snapshot copies the current contents of path to a timestamped .bak
// sibling, keeping the previous version addressable after overwrite.
func snapshot(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	stamp := fmt.Sprintf("%s.%s", path, time.Now().Format(backupTimestampLayout))
	backupPath := stamp + ".bak"
	var dst *os.File
	for n := 2; ; n++ {
		f, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			dst = f
			break
		}
		if !os.IsExist(err) {
			return err
		}
		// Same-second overwrite; pick the next free backup name.
		backupPath = fmt.Sprintf("%s-%d.bak", stamp, n)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
