package clones

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/types"
)

// RegisterExisting adds the project described by a marker file to
// current's clones and saves current. markerPath may also be the
// project directory holding the marker.
func (m *Manager) RegisterExisting(ctx context.Context, current *types.ProjectRecord, markerPath string) (*types.ProjectRecord, error) {
	if info, err := m.fs.Stat(markerPath); err == nil && info.IsDir() {
		markerPath = m.store.MarkerPath(markerPath)
	}
	markerPath, err := filepath.Abs(markerPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid marker path %s", markerPath)
	}

	record, err := m.store.ReadMarker(markerPath)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(markerPath); !types.SamePath(record.Path, dir) {
		m.logger.Warn().Str("recorded", record.Path).Str("dir", dir).Msg("Marker path does not match its directory, using the directory")
		record.Path = dir
	}

	if types.SamePath(record.Path, current.Path) {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is the current project", record.Path)
	}

	unlock, err := m.lock(ctx, current.Path)
	if err != nil {
		return nil, err
	}
	defer unlock()

	fresh, err := m.store.Load(current.Path)
	if err != nil {
		return nil, err
	}
	if fresh.FindClone(record.Path) != nil {
		m.logger.Warn().Str("clone", record.Path).Msg("Clone is already registered")
		return nil, errors.Newf(errors.ErrAlreadyExists, "%s is already registered", record.Path).
			WithDetail("path", record.Path)
	}

	fresh.AddClone(record)
	if err := m.store.Save(fresh); err != nil {
		return nil, err
	}
	current.Clones = fresh.Clones
	m.logger.Info().Str("project", current.Path).Str("clone", record.Path).Msg("Registered existing clone")
	return record, nil
}

// SetArguments changes and saves the launch arguments of the project at
// projectPath. For a clone the copy held in its source's marker is
// updated as well.
func (m *Manager) SetArguments(ctx context.Context, projectPath, arguments string) (*types.ProjectRecord, error) {
	if err := m.requireDir(projectPath); err != nil {
		return nil, err
	}

	unlock, err := m.lock(ctx, projectPath)
	if err != nil {
		return nil, err
	}
	record, err := m.store.Load(projectPath)
	if err == nil {
		record.Arguments = arguments
		err = m.store.Save(record)
	}
	unlock()
	if err != nil {
		return nil, err
	}

	if record.IsClone && m.store.HasMarker(record.SourcePath()) {
		if err := m.syncSourceArguments(ctx, record); err != nil {
			return record, err
		}
	}
	return record, nil
}

func (m *Manager) syncSourceArguments(ctx context.Context, clone *types.ProjectRecord) error {
	unlock, err := m.lock(ctx, clone.SourcePath())
	if err != nil {
		return err
	}
	defer unlock()

	source, err := m.store.Load(clone.SourcePath())
	if err != nil {
		return err
	}
	entry := source.FindClone(clone.Path)
	if entry == nil || entry.Arguments == clone.Arguments {
		return nil
	}
	entry.Arguments = clone.Arguments
	return m.store.Save(source)
}
