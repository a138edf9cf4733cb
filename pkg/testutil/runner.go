package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/projclone/pkg/platform"
)

// Call records one command seen by FakeRunner
type Call struct {
	Name     string
	Args     []string
	Detached bool
}

// Line renders the call as a single command line
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// FakeRunner is a platform.Runner that records commands instead of running
// them. RunFunc and StartFunc, when set, decide the outcome.
type FakeRunner struct {
	RunFunc   func(ctx context.Context, name string, args ...string) (platform.Output, error)
	StartFunc func(name string, args ...string) error

	mu    sync.Mutex
	calls []Call
}

func (r *FakeRunner) Run(ctx context.Context, name string, args ...string) (platform.Output, error) {
	r.record(Call{Name: name, Args: args})
	if r.RunFunc != nil {
		return r.RunFunc(ctx, name, args...)
	}
	return platform.Output{}, nil
}

func (r *FakeRunner) Start(name string, args ...string) error {
	r.record(Call{Name: name, Args: args, Detached: true})
	if r.StartFunc != nil {
		return r.StartFunc(name, args...)
	}
	return nil
}

// Calls returns a copy of the recorded calls
func (r *FakeRunner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

func (r *FakeRunner) record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}
