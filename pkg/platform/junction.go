package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/arthur-debert/projclone/pkg/errors"
)

// windowsPlatform links with directory junctions through cmd.exe
type windowsPlatform struct {
	runner Runner
}

func (p *windowsPlatform) Name() string {
	return "windows"
}

func (p *windowsPlatform) CreateLink(ctx context.Context, sourcePath, destinationPath string) (Output, error) {
	out, err := p.runner.Run(ctx, "cmd.exe", "/C", "mklink", "/J", destinationPath, sourcePath)
	if err != nil {
		return out, errors.Wrapf(err, errors.ErrLinkCreate, "failed to run mklink for %s", destinationPath)
	}
	if out.ExitCode != 0 && out.Stderr == "" {
		out.Stderr = fmt.Sprintf("mklink exited with status %d", out.ExitCode)
	}
	return out, nil
}

func (p *windowsPlatform) BulkDelete(ctx context.Context, path string) error {
	out, err := p.runner.Run(ctx, "cmd.exe", "/c", "rmdir", "/s", "/q", path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDelete, "failed to run rmdir on %s", path)
	}
	if out.ExitCode != 0 {
		return errors.Newf(errors.ErrDelete, "rmdir exited with status %d: %s", out.ExitCode, strings.TrimSpace(out.Stderr)).
			WithDetail("path", path)
	}
	return nil
}

func (p *windowsPlatform) LaunchHostApp(appPath, projectPath string, args []string) error {
	if err := p.runner.Start(appPath, hostArgs(projectPath, args)...); err != nil {
		return errors.Wrapf(err, errors.ErrLaunch, "failed to launch %s", appPath)
	}
	return nil
}

func (p *windowsPlatform) Reveal(path string) error {
	if err := p.runner.Start("explorer", path); err != nil {
		return errors.Wrapf(err, errors.ErrLaunch, "failed to reveal %s", path)
	}
	return nil
}

func (p *windowsPlatform) ResolveHostApp(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if path, err := exec.LookPath("Unity.exe"); err == nil {
		return path, nil
	}
	return "", errors.New(errors.ErrInvalidInput, "host application not found; set host.app_path")
}
