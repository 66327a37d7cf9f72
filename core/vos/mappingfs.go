package vos

import (
	"os"
	"time"

	"github.com/spf13/afero"
)

// FsOp is a textual description of the filesystem operation.
type FsOp = string

const (
	FsOpChtimes FsOp = "chtimes"
	FsOpChmod   FsOp = "chmod"
	FsOpChown   FsOp = "chown"
	FsOpStat    FsOp = "stat"
	FsOpRename  FsOp = "rename"
	FsOpRemove  FsOp = "remove"
	FsOpOpen    FsOp = "open"
	FsOpMkdir   FsOp = "mkdir"
	FsOpCreate  FsOp = "create"
)

type FileMapper func(op FsOp, name string) (path string, err error)

// PathMappingFs maps all paths on a filesystem via callback to another path.
type PathMappingFs struct {
	BaseFs afero.Fs
	Mapper FileMapper
}

var _ afero.Fs = (*PathMappingFs)(nil)

func NewPathMappingFs(base afero.Fs, mapper FileMapper) *PathMappingFs {
	return &PathMappingFs{BaseFs: base, Mapper: mapper}
}

func (b *PathMappingFs) Chtimes(name string, atime, mtime time.Time) (err error) {
	if name, err = b.Mapper(FsOpChtimes, name); err != nil {
		return &os.PathError{Op: FsOpChtimes, Path: name, Err: err}
	}
	return b.BaseFs.Chtimes(name, atime, mtime)
}

func (b *PathMappingFs) Chmod(name string, mode os.FileMode) (err error) {
	if name, err = b.Mapper(FsOpChmod, name); err != nil {
		return &os.PathError{Op: FsOpChmod, Path: name, Err: err}
	}
	return b.BaseFs.Chmod(name, mode)
}

func (b *PathMappingFs) Chown(name string, uid, gid int) (err error) {
	if name, err = b.Mapper(FsOpChown, name); err != nil {
		return &os.PathError{Op: FsOpChown, Path: name, Err: err}
	}
	return b.BaseFs.Chown(name, uid, gid)
}

func (b *PathMappingFs) Name() string {
	return "PathMappingFs"
}

func (b *PathMappingFs) Stat(name string) (fi os.FileInfo, err error) {
	if name, err = b.Mapper(FsOpStat, name); err != nil {
		return nil, &os.PathError{Op: FsOpStat, Path: name, Err: err}
	}
	return b.BaseFs.Stat(name)
}

func (b *PathMappingFs) Rename(oldname, newname string) (err error) {
	if oldname, err = b.Mapper(FsOpRename, oldname); err != nil {
		return &os.PathError{Op: FsOpRename, Path: oldname, Err: err}
	}
	if newname, err = b.Mapper(FsOpRename, newname); err != nil {
		return &os.PathError{Op: FsOpRename, Path: newname, Err: err}
	}
	return b.BaseFs.Rename(oldname, newname)
}

func (b *PathMappingFs) RemoveAll(name string) (err error) {
	if name, err = b.Mapper(FsOpRemove, name); err != nil {
		return &os.PathError{Op: FsOpRemove, Path: name, Err: err}
	}
	return b.BaseFs.RemoveAll(name)
}

func (b *PathMappingFs) Remove(name string) (err error) {
	if name, err = b.Mapper(FsOpRemove, name); err != nil {
		return &os.PathError{Op: FsOpRemove, Path: name, Err: err}
	}
	return b.BaseFs.Remove(name)
}

func (b *PathMappingFs) OpenFile(name string, flag int, mode os.FileMode) (f afero.File, err error) {
	if name, err = b.Mapper(FsOpOpen, name); err != nil {
		return nil, &os.PathError{Op: FsOpOpen, Path: name, Err: err}
	}
	return b.BaseFs.OpenFile(name, flag, mode)
}

func (b *PathMappingFs) Open(name string) (f afero.File, err error) {
	if name, err = b.Mapper(FsOpOpen, name); err != nil {
		return nil, &os.PathError{Op: FsOpOpen, Path: name, Err: err}
	}
	return b.BaseFs.Open(name)
}

func (b *PathMappingFs) Mkdir(name string, mode os.FileMode) (err error) {
	if name, err = b.Mapper(FsOpMkdir, name); err != nil {
		return &os.PathError{Op: FsOpMkdir, Path: name, Err: err}
	}
	return b.BaseFs.Mkdir(name, mode)
}

func (b *PathMappingFs) MkdirAll(name string, mode os.FileMode) (err error) {
	if name, err = b.Mapper(FsOpMkdir, name); err != nil {
		return &os.PathError{Op: FsOpMkdir, Path: name, Err: err}
	}
	return b.BaseFs.MkdirAll(name, mode)
}

func (b *PathMappingFs) Create(name string) (f afero.File, err error) {
	if name, err = b.Mapper(FsOpCreate, name); err != nil {
		return nil, &os.PathError{Op: FsOpCreate, Path: name, Err: err}
	}
	return b.BaseFs.Create(name)
}
