// Package writeback rewrites a file in place with new content.
package writeback

import (
	"fmt"
	"io/fs"
	"os"
)

// WriteFile replaces the content of path, preserving its existing file mode.
//
// The write is a whole-file rewrite performed only after all computation has
// succeeded; it is not atomic across a crash, but it is synced to disk before
// returning.
func WriteFile(path string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("open for rewrite: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write content: %w", err)
	}

	// Ensure data is written to disk
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	return nil
}
