package types

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/projclone/pkg/errors"
)

// DefaultArguments is the launch parameter a fresh record starts with
const DefaultArguments = "client"

// ProjectRecord is one node of the clone topology: an original project or a
// clone of one. Path is the identity key; no two records share a path.
type ProjectRecord struct {
	// Path is the absolute path to the project root
	Path string `toml:"path" json:"path" yaml:"path"`

	// IsClone is true when this node was produced by cloning another project
	IsClone bool `toml:"is_clone" json:"isClone" yaml:"isClone"`

	// Source is the root of the project this clone was made from.
	// Empty for originals.
	Source string `toml:"source_path,omitempty" json:"sourcePath,omitempty" yaml:"sourcePath,omitempty"`

	// Arguments is a free-form per-instance launch parameter
	Arguments string `toml:"arguments" json:"arguments" yaml:"arguments"`

	// Clones lists direct children in creation order
	Clones []*ProjectRecord `toml:"clones,omitempty" json:"clones,omitempty" yaml:"clones,omitempty"`

	name string
}

// NewProject returns a fresh original-project record for path
func NewProject(path string) *ProjectRecord {
	return &ProjectRecord{
		Path:      path,
		Arguments: DefaultArguments,
	}
}

// NewClone returns a record for a clone of sourcePath living at path
func NewClone(sourcePath, path string) *ProjectRecord {
	return &ProjectRecord{
		Path:      path,
		IsClone:   true,
		Source:    sourcePath,
		Arguments: DefaultArguments,
	}
}

// Name returns the last path segment of Path. It is computed on first use
// and cached for the lifetime of the record.
func (p *ProjectRecord) Name() string {
	if p.name == "" {
		trimmed := strings.TrimRight(filepath.ToSlash(p.Path), "/")
		p.name = trimmed[strings.LastIndex(trimmed, "/")+1:]
	}
	return p.name
}

// SourcePath returns the path this record was cloned from, or "" for originals
func (p *ProjectRecord) SourcePath() string {
	return p.Source
}

// CloneCount returns the number of direct clones
func (p *ProjectRecord) CloneCount() int {
	return len(p.Clones)
}

// AddClone appends child to the clone list. Path uniqueness is the caller's job.
func (p *ProjectRecord) AddClone(child *ProjectRecord) {
	if child == nil {
		return
	}
	p.Clones = append(p.Clones, child)
}

// RemoveClone drops every entry that is child or shares its path.
func (p *ProjectRecord) RemoveClone(child *ProjectRecord) {
	if child == nil || len(p.Clones) == 0 {
		return
	}
	kept := p.Clones[:0]
	for _, c := range p.Clones {
		if c == child || SameRecordPath(c.Path, child.Path) {
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(p.Clones); i++ {
		p.Clones[i] = nil
	}
	p.Clones = kept
}

// FindClone returns the direct clone living at path, or nil
func (p *ProjectRecord) FindClone(path string) *ProjectRecord {
	for _, c := range p.Clones {
		if SameRecordPath(c.Path, path) {
			return c
		}
	}
	return nil
}

// Validate checks the record's structural invariants
func (p *ProjectRecord) Validate() error {
	if p.Path == "" {
		return errors.New(errors.ErrInvalidInput, "project record has an empty path")
	}
	if p.IsClone && p.Source == "" {
		return errors.New(errors.ErrInvalidInput, "clone record has no source path").
			WithDetail("path", p.Path)
	}
	return nil
}

// SamePath compares two paths after cleaning. Comparison is case-insensitive,
// matching the project paths the host application treats as equal.
func SamePath(a, b string) bool {
	return strings.EqualFold(filepath.Clean(a), filepath.Clean(b))
}

// caseFoldingFS is true where the default filesystem ignores path case
var caseFoldingFS = runtime.GOOS == "windows" || runtime.GOOS == "darwin"

// SameRecordPath decides whether two paths name the same topology record.
// Case is only folded where the filesystem folds it, so distinct
// directories never share a record.
func SameRecordPath(a, b string) bool {
	if caseFoldingFS {
		return SamePath(a, b)
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
