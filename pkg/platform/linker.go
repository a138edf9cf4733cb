package platform

import (
	"context"
	"strings"

	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/logging"
	"github.com/arthur-debert/projclone/pkg/types"
	"github.com/rs/zerolog"
)

// Linker creates directory links after checking their preconditions.
// Refusals and link command failures are logged and returned; nothing panics.
type Linker struct {
	platform Platform
	fs       types.FS
	logger   zerolog.Logger
}

// NewLinker returns a Linker creating links through p
func NewLinker(p Platform, fs types.FS) *Linker {
	return &Linker{
		platform: p,
		fs:       fs,
		logger:   logging.GetLogger("platform.link"),
	}
}

// Link makes destinationPath resolve to the directory at sourcePath.
// sourcePath must be an existing directory and destinationPath must not
// exist. Whatever the link command prints on stderr is logged at error
// level; success is judged by the link being present afterwards.
func (l *Linker) Link(ctx context.Context, sourcePath, destinationPath string) error {
	info, err := l.fs.Stat(sourcePath)
	if err != nil || !info.IsDir() {
		l.logger.Warn().
			Str("source", sourcePath).
			Str("destination", destinationPath).
			Msg("Link source does not exist or is not a directory")
		return errors.Newf(errors.ErrNotFound, "link source %s is not a directory", sourcePath).
			WithDetail("source", sourcePath)
	}

	if _, err := l.fs.Lstat(destinationPath); err == nil {
		l.logger.Warn().
			Str("source", sourcePath).
			Str("destination", destinationPath).
			Msg("Link destination already exists")
		return errors.Newf(errors.ErrAlreadyExists, "link destination %s already exists", destinationPath).
			WithDetail("destination", destinationPath)
	}

	out, err := l.platform.CreateLink(ctx, sourcePath, destinationPath)
	if err != nil {
		l.logger.Error().Err(err).Str("destination", destinationPath).Msg("Could not run link command")
		return err
	}

	if stderr := strings.TrimSpace(out.Stderr); stderr != "" {
		l.logger.Error().
			Str("source", sourcePath).
			Str("destination", destinationPath).
			Int("exit_code", out.ExitCode).
			Msg(stderr)
	}

	linkInfo, err := l.fs.Lstat(destinationPath)
	if err != nil {
		return errors.Newf(errors.ErrLinkCreate, "link %s was not created", destinationPath).
			WithDetail("stderr", strings.TrimSpace(out.Stderr))
	}

	l.logger.Debug().
		Str("source", sourcePath).
		Str("destination", destinationPath).
		Bool("is_link", types.IsLinkMode(linkInfo.Mode())).
		Msg("Linked directory")
	return nil
}
