package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// WriteAtomic writes data to a temp file beside path and renames it into
// place, so readers never observe a partial document.
func WriteAtomic(fsys afero.Fs, path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	out, err := fsys.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		_ = out.Close()
		_ = fsys.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = fsys.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = fsys.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// ReadIfExists returns the file contents, or ok=false when the file does not
// exist. Other errors are returned as-is.
func ReadIfExists(fsys afero.Fs, path string) (data []byte, ok bool, err error) {
	data, err = afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}
