package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/filesystem"
	"github.com/arthur-debert/projclone/pkg/platform"
	"github.com/arthur-debert/projclone/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinker_RefusesMissingSource(t *testing.T) {
	runner := &testutil.FakeRunner{}
	p, err := platform.Detect("linux", runner)
	require.NoError(t, err)
	linker := platform.NewLinker(p, filesystem.NewOS())

	tmp := t.TempDir()
	err = linker.Link(context.Background(), filepath.Join(tmp, "missing"), filepath.Join(tmp, "dst"))

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Empty(t, runner.Calls(), "no command runs when the precondition fails")
}

func TestLinker_RefusesExistingDestination(t *testing.T) {
	runner := &testutil.FakeRunner{}
	p, err := platform.Detect("linux", runner)
	require.NoError(t, err)
	linker := platform.NewLinker(p, filesystem.NewOS())

	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.MkdirAll(dst, 0755))

	err = linker.Link(context.Background(), src, dst)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	assert.Empty(t, runner.Calls())
}

func TestLinker_ReportsMissingLinkAfterCommand(t *testing.T) {
	runner := &testutil.FakeRunner{
		RunFunc: func(ctx context.Context, name string, args ...string) (platform.Output, error) {
			return platform.Output{ExitCode: 1, Stderr: "ln: permission denied"}, nil
		},
	}
	p, err := platform.Detect("linux", runner)
	require.NoError(t, err)
	linker := platform.NewLinker(p, filesystem.NewOS())

	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	require.NoError(t, os.MkdirAll(src, 0755))

	err = linker.Link(context.Background(), src, filepath.Join(tmp, "dst"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkCreate))
	assert.Equal(t, "ln: permission denied", errors.GetErrorDetails(err)["stderr"])
}

func TestLinker_RealSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises the shell ln path")
	}
	p, err := platform.Current()
	require.NoError(t, err)
	linker := platform.NewLinker(p, filesystem.NewOS())

	tmp := t.TempDir()
	src := filepath.Join(tmp, "My Project", "Assets")
	dst := filepath.Join(tmp, "My Project_Clone1", "Assets")
	testutil.WriteTree(t, src, map[string]string{"Scenes/Main.unity": "scene"})
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))

	require.NoError(t, linker.Link(context.Background(), src, dst))

	assert.True(t, testutil.IsLink(t, dst))
	content, err := os.ReadFile(filepath.Join(dst, "Scenes", "Main.unity"))
	require.NoError(t, err)
	assert.Equal(t, "scene", string(content))
}
