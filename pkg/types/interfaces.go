package types

import (
	"io"
	"io/fs"
)

// FS defines the filesystem operations projclone performs
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Open(name string) (io.ReadCloser, error)
	Create(name string, perm fs.FileMode) (io.WriteCloser, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Lstat must not follow links; delete safety depends on it
	Lstat(name string) (fs.FileInfo, error)
}

// IsLinkMode reports whether mode describes a directory link rather than a
// real directory. Symlinks report ModeSymlink; Windows junctions report
// ModeIrregular.
func IsLinkMode(mode fs.FileMode) bool {
	return mode&(fs.ModeSymlink|fs.ModeIrregular) != 0
}
