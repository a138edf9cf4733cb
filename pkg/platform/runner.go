package platform

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/arthur-debert/projclone/pkg/logging"
)

// Output captures the result of a command that ran to completion
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes external commands
type Runner interface {
	// Run starts the command and waits for it. A non-zero exit status is
	// reported through Output.ExitCode, not as an error; err is reserved for
	// commands that could not be run at all.
	Run(ctx context.Context, name string, args ...string) (Output, error)

	// Start launches the command without waiting for it
	Start(name string, args ...string) error
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// NewExecRunner returns the default Runner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	logging.LogCommand(name, args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}

func (r *ExecRunner) Start(name string, args ...string) error {
	logging.LogCommand(name, args)

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// reap the child once it exits; nobody waits on its result
	go func() { _ = cmd.Wait() }()
	return nil
}
