package clones

import (
	"context"

	"github.com/arthur-debert/projclone/pkg/config"
	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/filesystem"
	"github.com/arthur-debert/projclone/pkg/logging"
	"github.com/arthur-debert/projclone/pkg/materializer"
	"github.com/arthur-debert/projclone/pkg/paths"
	"github.com/arthur-debert/projclone/pkg/platform"
	"github.com/arthur-debert/projclone/pkg/topology"
	"github.com/arthur-debert/projclone/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Manager. Zero fields get defaults: the OS
// filesystem, the embedded configuration and the running platform.
type Options struct {
	FS       types.FS
	Platform platform.Platform
	Config   *config.Config
	Reporter materializer.Reporter

	// LockDir holds per-project topology locks. Empty disables locking.
	LockDir string
}

// Manager is the clone lifecycle service
type Manager struct {
	fs       types.FS
	cfg      *config.Config
	platform platform.Platform
	store    *topology.Store
	copier   *materializer.Materializer
	linker   *platform.Linker
	lockDir  string
	logger   zerolog.Logger
}

// New builds a Manager. It fails only when no platform was given and the
// running one is unsupported.
func New(opts Options) (*Manager, error) {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Platform == nil {
		p, err := platform.Current()
		if err != nil {
			return nil, err
		}
		opts.Platform = p
	}

	return &Manager{
		fs:       opts.FS,
		cfg:      opts.Config,
		platform: opts.Platform,
		store:    topology.NewStore(opts.FS, opts.Config.Marker.Name),
		copier:   materializer.New(opts.FS, opts.Reporter),
		linker:   platform.NewLinker(opts.Platform, opts.FS),
		lockDir:  opts.LockDir,
		logger:   logging.GetLogger("clones"),
	}, nil
}

// Store exposes the topology store the manager persists through
func (m *Manager) Store() *topology.Store {
	return m.store
}

// Config returns the configuration in effect
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// CurrentProject resolves dir (the working directory when empty) and loads
// its record
func (m *Manager) CurrentProject(dir string) (*types.ProjectRecord, error) {
	root, err := paths.ProjectRoot(dir)
	if err != nil {
		return nil, err
	}
	info, err := m.fs.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotFound, "project directory %s does not exist", root).
			WithDetail("path", root)
	}
	return m.store.Load(root)
}

// lock serializes topology changes to projectPath across processes
func (m *Manager) lock(ctx context.Context, projectPath string) (func(), error) {
	if m.lockDir == "" {
		return func() {}, nil
	}
	l, err := topology.AcquireLock(ctx, paths.LockPathIn(m.lockDir, projectPath))
	if err != nil {
		return nil, err
	}
	m.logger.Trace().Str("project", projectPath).Str("lock", l.Path()).Msg("Acquired topology lock")
	return func() {
		if err := l.Release(); err != nil {
			m.logger.Warn().Err(err).Str("lock", l.Path()).Msg("Failed to release topology lock")
		}
	}, nil
}
