package cli

import (
	"github.com/arthur-debert/projclone/pkg/clones"
	"github.com/arthur-debert/projclone/pkg/config"
	"github.com/arthur-debert/projclone/pkg/materializer"
	"github.com/arthur-debert/projclone/pkg/paths"
	"github.com/arthur-debert/projclone/pkg/types"
	"github.com/arthur-debert/projclone/pkg/ui"
)

// app is what a command works with once flags are parsed
type app struct {
	cfg     *config.Config
	paths   paths.Paths
	mgr     *clones.Manager
	current *types.ProjectRecord
}

// newApp loads configuration for the selected project and builds the
// clone manager around it and its configuration. progress, when set, picks the copy reporter.
func newApp(deps *Deps, opts *globalOptions, progress func(*config.Config) materializer.Reporter) (*app, error) {
	root, err := paths.ProjectRoot(opts.project)
	if err != nil {
		return nil, err
	}
	p, err := paths.New()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.Sources{
		UserFile:    p.ConfigFilePath(),
		ProjectFile: config.ProjectFile(root, paths.ProjectConfigFile),
	})
	if err != nil {
		return nil, err
	}

	var reporter materializer.Reporter
	if progress != nil {
		reporter = progress(cfg)
	}

	mgr, err := clones.New(clones.Options{
		Platform: deps.Platform,
		Config:   cfg,
		Reporter: reporter,
		LockDir:  p.LockDir(),
	})
	if err != nil {
		return nil, err
	}

	current, err := mgr.CurrentProject(root)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, paths: p, mgr: mgr, current: current}, nil
}

// target resolves an optional positional path against the current project
func (a *app) target(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return a.current.Path, nil
	}
	return paths.ProjectRoot(args[0])
}

// report gathers the status of the current project and its clones
func (a *app) report() *ui.Report {
	return &ui.Report{
		Project: a.mgr.StatusOf(a.current),
		Clones:  a.mgr.Statuses(a.current),
	}
}
