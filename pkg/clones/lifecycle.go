package clones

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/logging"
	"github.com/arthur-debert/projclone/pkg/types"
	"github.com/google/shlex"
)

// LockFilePath returns where the host application's lock file for
// projectPath would be
func (m *Manager) LockFilePath(projectPath string) string {
	return filepath.Join(projectPath, filepath.FromSlash(m.cfg.Lock.Path))
}

// DetectOpen reports whether the host application holds projectPath open.
// It only checks that the lock file exists; a lock file left behind by a
// crashed instance reads as open.
func (m *Manager) DetectOpen(projectPath string) bool {
	_, err := m.fs.Stat(m.LockFilePath(projectPath))
	return err == nil
}

// OpenProject launches the host application on projectPath with the
// record's arguments. It refuses missing and already open projects and
// does not wait for the application.
func (m *Manager) OpenProject(projectPath string) error {
	if err := m.requireDir(projectPath); err != nil {
		m.logger.Error().Str("path", projectPath).Msg("Project path does not exist")
		return err
	}
	if m.DetectOpen(projectPath) {
		m.logger.Error().Str("path", projectPath).Msg("Project is already open")
		return errors.Newf(errors.ErrProjectOpen, "project %s is already open", projectPath).
			WithDetail("lock", m.LockFilePath(projectPath))
	}

	record, err := m.store.Load(projectPath)
	if err != nil {
		return err
	}
	args, err := shlex.Split(record.Arguments)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "cannot parse arguments %q", record.Arguments)
	}

	app, err := m.platform.ResolveHostApp(m.cfg.Host.AppPath)
	if err != nil {
		return err
	}

	m.logger.Info().Str("app", app).Str("path", projectPath).Strs("args", args).Msg("Opening project")
	return m.platform.LaunchHostApp(app, projectPath, args)
}

// Reveal opens projectPath in the OS file manager
func (m *Manager) Reveal(projectPath string) error {
	if err := m.requireDir(projectPath); err != nil {
		return err
	}
	return m.platform.Reveal(projectPath)
}

// DeleteClone removes the clone at projectPath: its marker first, then its
// tree. Links inside the tree are removed as links before the bulk delete,
// so content shared with the source project is never traversed. The clone
// is then dropped from its source's marker.
//
// Originals (a marker with is_clone false) are refused. A directory
// without a marker is deleted as is.
func (m *Manager) DeleteClone(ctx context.Context, projectPath string) error {
	if strings.TrimSpace(projectPath) == "" {
		m.logger.Warn().Msg("Delete requested with an empty path")
		return errors.New(errors.ErrInvalidInput, "no project path given")
	}
	path, err := filepath.Abs(projectPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", projectPath)
	}
	if err := m.requireDir(path); err != nil {
		return err
	}

	var sourcePath string
	if m.store.HasMarker(path) {
		record, err := m.store.ReadMarker(m.store.MarkerPath(path))
		if err != nil {
			return err
		}
		if !record.IsClone {
			m.logger.Warn().Str("path", path).Msg("Refusing to delete an original project")
			return errors.Newf(errors.ErrInvalidInput, "%s is an original project, not a clone", path).
				WithDetail("path", path)
		}
		sourcePath = record.SourcePath()
	} else {
		m.logger.Warn().Str("path", path).Msg("Deleting a directory without a marker")
	}

	done := logging.LogOperationStart(m.logger, "delete clone")
	defer done()

	if err := m.store.Remove(path); err != nil {
		return err
	}

	unlinked, err := m.unlinkAll(path)
	if err != nil {
		return err
	}
	m.logger.Debug().Str("path", path).Int("links", unlinked).Msg("Removed links before delete")

	if err := m.platform.BulkDelete(ctx, path); err != nil {
		return err
	}
	if _, err := m.fs.Lstat(path); err == nil {
		return errors.Newf(errors.ErrDelete, "%s still exists after delete", path).
			WithDetail("path", path)
	}

	if sourcePath != "" {
		if err := m.unregister(ctx, sourcePath, path); err != nil {
			return err
		}
	}

	m.logger.Info().Str("path", path).Msg("Clone deleted")
	return nil
}

// unlinkAll removes every symlink or junction under root without following
// it and returns how many were removed
func (m *Manager) unlinkAll(root string) (int, error) {
	entries, err := m.fs.ReadDir(root)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrDelete, "failed to read %s", root)
	}

	removed := 0
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		info, err := m.fs.Lstat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, errors.Wrapf(err, errors.ErrDelete, "failed to inspect %s", path)
		}

		switch {
		case types.IsLinkMode(info.Mode()):
			if err := m.fs.Remove(path); err != nil {
				return removed, errors.Wrapf(err, errors.ErrDelete, "failed to remove link %s", path)
			}
			removed++
		case info.Mode()&fs.ModeType == fs.ModeDir:
			n, err := m.unlinkAll(path)
			removed += n
			if err != nil {
				return removed, err
			}
		}
	}
	return removed, nil
}

// unregister drops clonePath from the record at sourcePath
func (m *Manager) unregister(ctx context.Context, sourcePath, clonePath string) error {
	if !m.store.HasMarker(sourcePath) {
		m.logger.Debug().Str("source", sourcePath).Msg("Source has no marker, nothing to unregister")
		return nil
	}
	unlock, err := m.lock(ctx, sourcePath)
	if err != nil {
		return err
	}
	defer unlock()

	// Load already drops the deleted directory; the explicit removal keeps
	// the record right even if a directory reappeared at that path
	source, err := m.store.Load(sourcePath)
	if err != nil {
		return err
	}
	if c := source.FindClone(clonePath); c != nil {
		source.RemoveClone(c)
		return m.store.Save(source)
	}
	return nil
}

func (m *Manager) requireDir(path string) error {
	info, err := m.fs.Stat(path)
	if err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrNotFound, "project directory %s does not exist", path).
			WithDetail("path", path)
	}
	return nil
}
