package clones

import "github.com/arthur-debert/projclone/pkg/types"

// Status is a point-in-time view of one project for listings
type Status struct {
	Name      string `json:"name" yaml:"name"`
	Path      string `json:"path" yaml:"path"`
	IsClone   bool   `json:"isClone" yaml:"isClone"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty"`
	Arguments string `json:"arguments" yaml:"arguments"`
	Open      bool   `json:"open" yaml:"open"`
	Clones    int    `json:"clones" yaml:"clones"`
}

// StatusOf reports on a single record
func (m *Manager) StatusOf(record *types.ProjectRecord) Status {
	return Status{
		Name:      record.Name(),
		Path:      record.Path,
		IsClone:   record.IsClone,
		Source:    record.SourcePath(),
		Arguments: record.Arguments,
		Open:      m.DetectOpen(record.Path),
		Clones:    record.CloneCount(),
	}
}

// Statuses reports on each direct clone of record, in creation order
func (m *Manager) Statuses(record *types.ProjectRecord) []Status {
	out := make([]Status, 0, record.CloneCount())
	for _, c := range record.Clones {
		out = append(out, m.StatusOf(c))
	}
	return out
}
