package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(tmp, "config"))
	t.Setenv(EnvStateDir, filepath.Join(tmp, "state"))

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmp, "config"), p.ConfigDir())
	assert.Equal(t, filepath.Join(tmp, "config", ConfigFileName), p.ConfigFilePath())
	assert.Equal(t, filepath.Join(tmp, "state"), p.StateDir())
	assert.Equal(t, filepath.Join(tmp, "state", LocksDir), p.LockDir())
}

func TestNew_DefaultsAreAbsolute(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvStateDir, "")

	p, err := New()
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(p.ConfigDir()))
	assert.True(t, filepath.IsAbs(p.StateDir()))
	assert.Equal(t, AppDirName, filepath.Base(p.ConfigDir()))
}

func TestLockPathIn(t *testing.T) {
	dir := "/state/locks"

	a := LockPathIn(dir, "/work/Proj")
	b := LockPathIn(dir, "/work/Proj/")
	c := LockPathIn(dir, "/work/Proj_Clone1")

	assert.Equal(t, a, b, "cleaned paths share a lock")
	assert.NotEqual(t, a, c)
	assert.Equal(t, dir, filepath.Dir(a))
	assert.Equal(t, ".lock", filepath.Ext(a))
}

func TestProjectRoot(t *testing.T) {
	tmp := t.TempDir()

	got, err := ProjectRoot(tmp)
	require.NoError(t, err)
	assert.Equal(t, tmp, got)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	got, err = ProjectRoot("")
	require.NoError(t, err)
	assert.Equal(t, cwd, got)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "projects"), expandHome("~/projects"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
}
