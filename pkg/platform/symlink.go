package platform

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/projclone/pkg/errors"
)

// unixPlatform links with `ln -s` through the shell
type unixPlatform struct {
	goos   string
	runner Runner
}

func (p *unixPlatform) Name() string {
	return "unix"
}

func (p *unixPlatform) CreateLink(ctx context.Context, sourcePath, destinationPath string) (Output, error) {
	command := fmt.Sprintf("ln -s %s %s", ShellQuote(sourcePath), ShellQuote(destinationPath))
	out, err := p.runner.Run(ctx, "/bin/sh", "-c", command)
	if err != nil {
		return out, errors.Wrapf(err, errors.ErrLinkCreate, "failed to run %q", command)
	}
	if out.ExitCode != 0 && out.Stderr == "" {
		out.Stderr = fmt.Sprintf("ln exited with status %d", out.ExitCode)
	}
	return out, nil
}

func (p *unixPlatform) BulkDelete(ctx context.Context, path string) error {
	out, err := p.runner.Run(ctx, "rm", "-rf", "--", path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDelete, "failed to run rm on %s", path)
	}
	if out.ExitCode != 0 {
		return errors.Newf(errors.ErrDelete, "rm exited with status %d: %s", out.ExitCode, strings.TrimSpace(out.Stderr)).
			WithDetail("path", path)
	}
	return nil
}

func (p *unixPlatform) LaunchHostApp(appPath, projectPath string, args []string) error {
	if err := p.runner.Start(appPath, hostArgs(projectPath, args)...); err != nil {
		return errors.Wrapf(err, errors.ErrLaunch, "failed to launch %s", appPath)
	}
	return nil
}

func (p *unixPlatform) Reveal(path string) error {
	opener := "xdg-open"
	if p.goos == "darwin" {
		opener = "open"
	}
	if err := p.runner.Start(opener, path); err != nil {
		return errors.Wrapf(err, errors.ErrLaunch, "failed to reveal %s", path)
	}
	return nil
}

func (p *unixPlatform) ResolveHostApp(configured string) (string, error) {
	if configured != "" {
		if p.goos == "darwin" && strings.HasSuffix(strings.TrimRight(configured, "/"), ".app") {
			return BundleExecutable(configured), nil
		}
		return configured, nil
	}
	for _, candidate := range []string{"Unity", "unity-editor"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", errors.New(errors.ErrInvalidInput, "host application not found; set host.app_path").
		WithDetail("searched", filepath.Join("$PATH", "Unity"))
}
