package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode used for a formatted file that
// did not already exist (WriteAtomic always overwrites an existing
// source file in place, so this only matters for the rare case of
// writing a path with no prior file).
const DefaultFileMode os.FileMode = 0644

// WriteAtomic writes formatted source bytes to path without ever
// leaving a half-written or truncated file behind on a crash or a
// concurrent reader. If mode is 0, the target's existing permission
// bits are preserved (a formatter must never change a file's mode,
// only its contents); DefaultFileMode is used only when the file does
// not exist yet.
//
//  1. Create a temp file in the same directory as the target, so the
//     final rename stays on one filesystem and is atomic on POSIX.
//  2. Write the formatted bytes and sync them to disk.
//  3. Apply the resolved mode.
//  4. Rename the temp file onto the target path.
//
// On error the temp file is removed and the original source is left
// untouched.
func WriteAtomic(ctx context.Context, path string, formatted []byte, mode os.FileMode) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("write formatted file: %w", ctx.Err())
	default:
	}

	if mode == 0 {
		mode = resolveMode(path)
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(formatted); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// resolveMode returns path's existing permission bits, or
// DefaultFileMode if path does not exist or cannot be stat'd.
func resolveMode(path string) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return DefaultFileMode
	}
	return info.Mode().Perm()
}
