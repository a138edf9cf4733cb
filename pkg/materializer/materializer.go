package materializer

import (
	"context"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/logging"
	"github.com/arthur-debert/projclone/pkg/types"
	"github.com/rs/zerolog"
)

// FailedFile is a source entry that could not be copied
type FailedFile struct {
	Path string
	Err  error
}

// CopyResult summarizes one CopyWithProgress call
type CopyResult struct {
	Label       string
	Source      string
	Destination string

	// TotalBytes is the size of the source tree measured before copying
	TotalBytes int64

	// ProcessedBytes counts every file visited, copied or not
	ProcessedBytes int64

	// CopiedBytes counts only files that were copied successfully
	CopiedBytes int64

	Files     int
	Failed    []FailedFile
	Cancelled bool
}

// Complete reports whether every file was copied and the walk finished
func (r *CopyResult) Complete() bool {
	return !r.Cancelled && len(r.Failed) == 0
}

// Materializer copies trees through a types.FS
type Materializer struct {
	fs       types.FS
	reporter Reporter
	logger   zerolog.Logger
}

// New returns a Materializer. A nil reporter discards progress.
func New(filesystem types.FS, reporter Reporter) *Materializer {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Materializer{
		fs:       filesystem,
		reporter: reporter,
		logger:   logging.GetLogger("materializer"),
	}
}

// DirectorySize returns the summed size of every regular file under path.
// Links are not followed. Unreadable subdirectories are skipped with a
// warning.
func (m *Materializer) DirectorySize(ctx context.Context, path string) (int64, error) {
	entries, err := m.fs.ReadDir(path)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrNotFound, "failed to read %s", path)
	}
	return m.sizeOf(ctx, path, entries)
}

func (m *Materializer) sizeOf(ctx context.Context, dir string, entries []fs.DirEntry) (int64, error) {
	var total int64
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return total, errors.Wrap(err, errors.ErrCancelled, "size scan cancelled")
		}
		path := filepath.Join(dir, entry.Name())
		switch {
		case types.IsLinkMode(entry.Type()):
			continue
		case entry.IsDir():
			children, err := m.fs.ReadDir(path)
			if err != nil {
				m.logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable directory in size scan")
				continue
			}
			size, err := m.sizeOf(ctx, path, children)
			total += size
			if err != nil {
				return total, err
			}
		default:
			info, err := entry.Info()
			if err != nil {
				continue
			}
			total += info.Size()
		}
	}
	return total, nil
}

// CopyWithProgress copies the tree at src into dst, creating directories as
// needed. The same-path case is refused. A cancelled ctx stops the walk
// before the next file; the partial result is returned together with an
// ErrCancelled error. Individual file failures do not fail the call; they
// are listed in CopyResult.Failed.
func (m *Materializer) CopyWithProgress(ctx context.Context, src, dst, label string) (*CopyResult, error) {
	if types.SamePath(src, dst) {
		m.logger.Error().Str("source", src).Str("destination", dst).Msg("Source and destination are the same path")
		return nil, errors.Newf(errors.ErrSamePath, "cannot copy %s onto itself", src).
			WithDetail("source", src)
	}
	done := logging.LogOperationStart(m.logger, "copy "+label)
	defer done()

	result := &CopyResult{Label: label, Source: src, Destination: dst}

	m.reporter.Scanning(label, src)
	total, err := m.DirectorySize(ctx, src)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrCancelled) {
			result.Cancelled = true
			m.reporter.Finish(result)
		}
		return result, err
	}
	result.TotalBytes = total
	m.reporter.Start(label, total)

	if err := m.fs.MkdirAll(dst, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dst)
	}

	err = m.copyDir(ctx, src, dst, result)
	m.reporter.Finish(result)

	m.logger.Debug().
		Str("label", label).
		Int64("total_bytes", result.TotalBytes).
		Int64("copied_bytes", result.CopiedBytes).
		Int("files", result.Files).
		Int("failed", len(result.Failed)).
		Bool("cancelled", result.Cancelled).
		Msg("Copy finished")
	return result, err
}

func (m *Materializer) copyDir(ctx context.Context, src, dst string, result *CopyResult) error {
	entries, err := m.fs.ReadDir(src)
	if err != nil {
		m.logger.Warn().Err(err).Str("path", src).Msg("Cannot read directory, skipping")
		result.Failed = append(result.Failed, FailedFile{Path: src, Err: err})
		return nil
	}

	var subdirs []fs.DirEntry
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, entry)
			continue
		}
		if err := ctx.Err(); err != nil {
			result.Cancelled = true
			return errors.Wrap(err, errors.ErrCancelled, "copy cancelled")
		}
		m.copyEntry(src, dst, entry, result)
	}

	for _, entry := range subdirs {
		if err := ctx.Err(); err != nil {
			result.Cancelled = true
			return errors.Wrap(err, errors.ErrCancelled, "copy cancelled")
		}
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		if err := m.fs.MkdirAll(to, 0755); err != nil {
			// the files below will fail one by one and still be accounted
			m.logger.Warn().Err(err).Str("path", to).Msg("Cannot create directory")
			result.Failed = append(result.Failed, FailedFile{Path: from, Err: err})
		}
		if err := m.copyDir(ctx, from, to, result); err != nil {
			return err
		}
	}
	return nil
}

func (m *Materializer) copyEntry(srcDir, dstDir string, entry fs.DirEntry, result *CopyResult) {
	from := filepath.Join(srcDir, entry.Name())
	to := filepath.Join(dstDir, entry.Name())

	if types.IsLinkMode(entry.Type()) {
		if err := m.copyLink(from, to); err != nil {
			m.logger.Warn().Err(err).Str("path", from).Msg("Failed to recreate link")
			result.Failed = append(result.Failed, FailedFile{Path: from, Err: err})
		}
		m.report(from, result)
		return
	}

	// pipes, sockets and devices cannot be copied by content
	if entry.Type()&fs.ModeType != 0 {
		err := errors.Newf(errors.ErrInvalidInput, "unsupported file type %s", entry.Type()).
			WithDetail("path", from)
		m.logger.Warn().Str("path", from).Str("type", entry.Type().String()).Msg("Skipping special file")
		result.Failed = append(result.Failed, FailedFile{Path: from, Err: err})
		m.report(from, result)
		return
	}

	info, err := entry.Info()
	if err != nil {
		result.Failed = append(result.Failed, FailedFile{Path: from, Err: err})
		m.report(from, result)
		return
	}

	size := info.Size()
	result.ProcessedBytes += size
	if err := m.copyFile(from, to, info.Mode().Perm()); err != nil {
		m.logger.Warn().Err(err).Str("path", from).Msg("Failed to copy file")
		result.Failed = append(result.Failed, FailedFile{Path: from, Err: err})
	} else {
		result.CopiedBytes += size
		result.Files++
	}
	m.report(from, result)
}

func (m *Materializer) report(path string, result *CopyResult) {
	m.reporter.Progress(Progress{
		Label:          result.Label,
		Path:           path,
		ProcessedBytes: result.ProcessedBytes,
		TotalBytes:     result.TotalBytes,
	})
}

func (m *Materializer) copyFile(from, to string, perm fs.FileMode) error {
	in, err := m.fs.Open(from)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := m.fs.Create(to, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// copyLink recreates a symlink found inside a copied tree instead of
// following it
func (m *Materializer) copyLink(from, to string) error {
	target, err := m.fs.Readlink(from)
	if err != nil {
		return err
	}
	return m.fs.Symlink(target, to)
}
