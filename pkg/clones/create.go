package clones

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/logging"
	"github.com/arthur-debert/projclone/pkg/materializer"
	"github.com/arthur-debert/projclone/pkg/types"
)

// CloneResult describes a finished CreateClone
type CloneResult struct {
	// Project is the new clone's record, also appended to the source
	Project *types.ProjectRecord

	// Copied holds one result per deep-copied directory
	Copied []*materializer.CopyResult

	// Linked names the top-level directories linked back to the source
	Linked []string

	// LinkFailed names the directories whose link could not be created
	LinkFailed []string
}

// Complete reports whether every directory was materialized in full
func (r *CloneResult) Complete() bool {
	if len(r.LinkFailed) > 0 {
		return false
	}
	for _, c := range r.Copied {
		if !c.Complete() {
			return false
		}
	}
	return true
}

// SuggestCloneName returns the default clone directory name for source:
// its name, the configured suffix and the next clone number
func (m *Manager) SuggestCloneName(source *types.ProjectRecord) string {
	return fmt.Sprintf("%s%s%d", source.Name(), m.cfg.Clone.NameSuffix, source.CloneCount()+1)
}

// SuggestClonePath places SuggestCloneName next to the source project
func (m *Manager) SuggestClonePath(source *types.ProjectRecord) string {
	return filepath.Join(filepath.Dir(filepath.Clean(source.Path)), m.SuggestCloneName(source))
}

// CreateClone materializes a clone of source at destination, saves its
// marker and registers it in source's marker. An empty destination means
// the user backed out: nothing happens and (nil, nil) is returned.
//
// Only first-level directories of source are classified. Those named in
// clone.copy_dirs are copied, the rest are linked. Files at the top level
// are not carried over. Copy and link failures are collected in the result
// and do not abort the clone. Cancelling ctx stops the clone before it is
// registered; the partial destination stays on disk.
func (m *Manager) CreateClone(ctx context.Context, source *types.ProjectRecord, destination string) (*CloneResult, error) {
	if strings.TrimSpace(destination) == "" {
		m.logger.Info().Str("source", source.Path).Msg("No destination chosen, clone aborted")
		return nil, nil
	}

	dst, err := filepath.Abs(destination)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid destination %s", destination)
	}
	src := filepath.Clean(source.Path)

	if err := m.checkDestination(src, dst); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCancelled, "clone cancelled")
	}

	done := logging.LogOperationStart(m.logger, "create clone")
	defer done()

	unlock, err := m.lock(ctx, src)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := m.fs.MkdirAll(dst, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dst)
	}

	result := &CloneResult{}
	if err := m.materialize(ctx, src, dst, result); err != nil {
		return result, err
	}

	clone := types.NewClone(src, dst)
	clone.Arguments = m.cfg.Clone.DefaultArguments
	if err := m.store.Save(clone); err != nil {
		return result, err
	}

	// re-read under the lock so clones registered meanwhile are kept
	fresh, err := m.store.Load(src)
	if err != nil {
		return result, err
	}
	fresh.RemoveClone(clone)
	fresh.AddClone(clone)
	if err := m.store.Save(fresh); err != nil {
		return result, err
	}
	source.Clones = fresh.Clones

	result.Project = clone
	m.logger.Info().
		Str("source", src).
		Str("clone", dst).
		Int("copied", len(result.Copied)).
		Int("linked", len(result.Linked)).
		Int("link_failed", len(result.LinkFailed)).
		Msg("Clone created")
	return result, nil
}

func (m *Manager) checkDestination(src, dst string) error {
	if types.SamePath(src, dst) {
		m.logger.Error().Str("source", src).Msg("Clone destination is the source project")
		return errors.Newf(errors.ErrSamePath, "cannot clone %s onto itself", src)
	}
	rel, err := filepath.Rel(strings.ToLower(src), strings.ToLower(dst))
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		m.logger.Error().Str("source", src).Str("destination", dst).Msg("Clone destination is inside the source project")
		return errors.Newf(errors.ErrInvalidInput, "clone destination %s is inside %s", dst, src).
			WithDetail("destination", dst)
	}

	info, err := m.fs.Lstat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrInvalidInput, "cannot inspect %s", dst)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrAlreadyExists, "%s exists and is not a directory", dst).
			WithDetail("destination", dst)
	}
	entries, err := m.fs.ReadDir(dst)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "cannot read %s", dst)
	}
	if len(entries) > 0 {
		m.logger.Warn().Str("destination", dst).Msg("Clone destination is not empty")
		return errors.Newf(errors.ErrAlreadyExists, "clone destination %s is not empty", dst).
			WithDetail("destination", dst)
	}
	return nil
}

// materialize copies or links every first-level directory of src into dst
func (m *Manager) materialize(ctx context.Context, src, dst string, result *CloneResult) error {
	entries, err := m.fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "failed to read source project %s", src)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrCancelled, "clone cancelled")
		}

		name := entry.Name()
		from := filepath.Join(src, name)
		to := filepath.Join(dst, name)
		if !m.isDir(from, entry.IsDir()) {
			continue
		}

		if m.cfg.IsCopyDir(name) {
			copied, err := m.copier.CopyWithProgress(ctx, from, to, name)
			if copied != nil {
				result.Copied = append(result.Copied, copied)
			}
			if errors.IsErrorCode(err, errors.ErrCancelled) {
				return err
			}
			if err != nil {
				m.logger.Warn().Err(err).Str("dir", name).Msg("Copy failed")
			}
			continue
		}

		if err := m.linker.Link(ctx, from, to); err != nil {
			result.LinkFailed = append(result.LinkFailed, name)
			continue
		}
		result.Linked = append(result.Linked, name)
	}
	return nil
}

// isDir accepts real directories and links that resolve to one
func (m *Manager) isDir(path string, entryIsDir bool) bool {
	if entryIsDir {
		return true
	}
	info, err := m.fs.Stat(path)
	return err == nil && info.IsDir()
}
