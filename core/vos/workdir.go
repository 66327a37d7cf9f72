package vos

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// WorkingDirFs is a filesystem where relative names resolve against a
// mutable working directory. The working directory is shared by every
// caller, foreground or background.
type WorkingDirFs struct {
	*PathMappingFs

	rw  sync.RWMutex
	dir string
}

// NewWorkingDirFs wraps base with the working directory set to dir.
func NewWorkingDirFs(base afero.Fs, dir string) *WorkingDirFs {
	out := &WorkingDirFs{dir: filepath.Clean(dir)}
	out.PathMappingFs = NewPathMappingFs(base, func(_ FsOp, name string) (string, error) {
		return out.Abs(name), nil
	})
	return out
}

// Getwd returns the working directory.
func (w *WorkingDirFs) Getwd() string {
	w.rw.RLock()
	defer w.rw.RUnlock()
	return w.dir
}

// Abs resolves name against the working directory.
func (w *WorkingDirFs) Abs(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(w.Getwd(), name)
}

// Chdir changes the working directory, dir must exist and be a directory.
func (w *WorkingDirFs) Chdir(dir string) error {
	dir = w.Abs(dir)

	stat, err := w.BaseFs.Stat(dir)
	switch {
	case err != nil:
		return err
	case !stat.IsDir():
		return fmt.Errorf("%s: Not a directory", dir)
	}

	w.rw.Lock()
	defer w.rw.Unlock()
	w.dir = dir
	return nil
}

// IsDir reports whether name exists and is a directory.
func (w *WorkingDirFs) IsDir(name string) bool {
	ok, err := afero.IsDir(w, name)
	return err == nil && ok
}
