package platform

import (
	"context"
	"runtime"
	"strings"

	"github.com/arthur-debert/projclone/pkg/errors"
)

// Platform is the per-OS capability set
type Platform interface {
	// Name identifies the implementation ("windows" or "unix")
	Name() string

	// CreateLink makes destinationPath resolve to sourcePath. It blocks until
	// the link command exits and returns its output; stderr is for the
	// caller to surface.
	CreateLink(ctx context.Context, sourcePath, destinationPath string) (Output, error)

	// BulkDelete recursively removes path with the platform's native tool
	BulkDelete(ctx context.Context, path string) error

	// LaunchHostApp starts the host application on projectPath without waiting
	LaunchHostApp(appPath, projectPath string, args []string) error

	// Reveal opens path in the OS file manager without waiting
	Reveal(path string) error

	// ResolveHostApp turns the configured host application (possibly empty)
	// into an executable path
	ResolveHostApp(configured string) (string, error)
}

var unixFamily = map[string]bool{
	"darwin":    true,
	"linux":     true,
	"freebsd":   true,
	"openbsd":   true,
	"netbsd":    true,
	"dragonfly": true,
	"solaris":   true,
	"illumos":   true,
	"aix":       true,
}

// Detect selects the Platform for goos
func Detect(goos string, runner Runner) (Platform, error) {
	if runner == nil {
		runner = NewExecRunner()
	}
	switch {
	case goos == "windows":
		return &windowsPlatform{runner: runner}, nil
	case unixFamily[goos]:
		return &unixPlatform{goos: goos, runner: runner}, nil
	default:
		return nil, errors.Newf(errors.ErrUnsupportedPlatform, "platform %q is not supported", goos).
			WithDetail("goos", goos)
	}
}

// Current returns the Platform for the running OS using the exec runner
func Current() (Platform, error) {
	return Detect(runtime.GOOS, NewExecRunner())
}

// hostArgs builds the host application's argument list
func hostArgs(projectPath string, args []string) []string {
	out := make([]string, 0, len(args)+2)
	out = append(out, "-projectPath", projectPath)
	return append(out, args...)
}

// ShellQuote quotes s for a POSIX shell. Spaces, quotes and metacharacters
// all survive intact.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
