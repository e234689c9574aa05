// Package atomicfs implements crash-safe file writes.
package atomicfs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store writes files so that readers observe either the previous content or
// the complete new content, never a partial file.
type Store struct {
	logger ports.Logger
}

// New creates a Store. Directory sync failures are reported to log.
func New(log ports.Logger) *Store {
	return &Store{logger: log}
}

// WriteDurable writes data to path through a temp file in the same directory,
// syncing the file before the rename and the directory after it.
func (s *Store) WriteDurable(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, domain.TempPrefix+"*"+domain.TempSuffix)
	if err != nil {
		return writeError(path, err)
	}
	tmpName := tmp.Name()

	if err := writeAndSync(tmp, data, perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return writeError(path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return writeError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return writeError(path, err)
	}

	if err := syncDir(dir); err != nil && s.logger != nil {
		s.logger.Warn(fmt.Sprintf("failed to sync directory %s: %v", dir, err))
	}
	return nil
}

// WriteJSON marshals v with two-space indentation and writes it durably.
func (s *Store) WriteJSON(path string, v any, perm os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.With(domain.NewCacheIOError("marshal", "failed to serialize "+filepath.Base(path)).WithCause(err),
			"path", path)
	}
	return s.WriteDurable(path, data, perm)
}

func writeAndSync(f *os.File, data []byte, perm os.FileMode) error {
	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return f.Chmod(perm)
}

func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	//nolint:gosec // dir is the parent of a path we just wrote
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer func() { _ = d.Close() }()
	return d.Sync()
}

func writeError(path string, err error) error {
	return zerr.With(domain.NewCacheIOError("write", "failed to write "+filepath.Base(path)).WithCause(err),
		"path", path)
}
