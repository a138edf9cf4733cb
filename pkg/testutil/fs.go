package testutil

import (
	"io"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/projclone/pkg/types"
)

// FailingFS wraps a types.FS and fails Open for the listed paths
type FailingFS struct {
	types.FS
	FailOpen map[string]error
}

// NewFailingFS wraps inner; paths are cleaned before matching
func NewFailingFS(inner types.FS, failures map[string]error) *FailingFS {
	clean := make(map[string]error, len(failures))
	for p, err := range failures {
		clean[filepath.Clean(p)] = err
	}
	return &FailingFS{FS: inner, FailOpen: clean}
}

func (f *FailingFS) Open(name string) (io.ReadCloser, error) {
	if err, ok := f.FailOpen[filepath.Clean(name)]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return f.FS.Open(name)
}
