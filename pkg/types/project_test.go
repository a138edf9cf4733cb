package types_test

import (
	"io/fs"
	"runtime"
	"testing"

	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	p := types.NewProject("/work/Proj")

	assert.Equal(t, "/work/Proj", p.Path)
	assert.False(t, p.IsClone)
	assert.Empty(t, p.SourcePath())
	assert.Equal(t, types.DefaultArguments, p.Arguments)
	assert.Equal(t, 0, p.CloneCount())
}

func TestNewClone(t *testing.T) {
	c := types.NewClone("/work/Proj", "/work/Proj_Clone1")

	assert.True(t, c.IsClone)
	assert.Equal(t, "/work/Proj", c.SourcePath())
	assert.Equal(t, "/work/Proj_Clone1", c.Path)
	require.NoError(t, c.Validate())
}

func TestName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/work/Proj", "Proj"},
		{"/work/Proj_Clone1/", "Proj_Clone1"},
		{"Proj", "Proj"},
		{"/work/My Project", "My Project"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, types.NewProject(tt.path).Name())
		})
	}
}

func TestName_IsCached(t *testing.T) {
	p := types.NewProject("/work/Proj")
	assert.Equal(t, "Proj", p.Name())

	p.Path = "/work/Renamed"
	assert.Equal(t, "Proj", p.Name())
}

func TestAddAndRemoveClone(t *testing.T) {
	p := types.NewProject("/work/Proj")
	c1 := types.NewClone(p.Path, "/work/Proj_Clone1")
	c2 := types.NewClone(p.Path, "/work/Proj_Clone2")
	c3 := types.NewClone(p.Path, "/work/Proj_Clone3")

	p.AddClone(c1)
	p.AddClone(c2)
	p.AddClone(c3)
	p.AddClone(nil)
	require.Equal(t, 3, p.CloneCount())
	assert.Equal(t, []*types.ProjectRecord{c1, c2, c3}, p.Clones)

	p.RemoveClone(c2)
	assert.Equal(t, []*types.ProjectRecord{c1, c3}, p.Clones)

	// a distinct record with the same path matches by path
	p.RemoveClone(types.NewClone(p.Path, "/work/Proj_Clone1"))
	assert.Equal(t, []*types.ProjectRecord{c3}, p.Clones)

	// absent entry is a no-op
	p.RemoveClone(c2)
	assert.Equal(t, 1, p.CloneCount())
}

func TestRemoveClone_EmptyList(t *testing.T) {
	p := types.NewProject("/work/Proj")
	assert.NotPanics(t, func() {
		p.RemoveClone(types.NewClone(p.Path, "/work/Proj_Clone1"))
	})
	assert.Equal(t, 0, p.CloneCount())
}

func TestFindClone(t *testing.T) {
	p := types.NewProject("/work/Proj")
	c := types.NewClone(p.Path, "/work/Proj_Clone1")
	p.AddClone(c)

	assert.Same(t, c, p.FindClone("/work/Proj_Clone1/"))
	assert.Nil(t, p.FindClone("/work/Other"))
}

func TestRecordIdentity_CaseSensitiveFS(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("filesystem folds case")
	}
	p := types.NewProject("/work/Game")
	upper := types.NewClone(p.Path, "/work/Game_Clone1")
	lower := types.NewClone(p.Path, "/work/Game_clone1")
	p.AddClone(upper)

	assert.Nil(t, p.FindClone(lower.Path))

	p.RemoveClone(lower)
	p.AddClone(lower)
	require.Equal(t, 2, p.CloneCount())
	assert.Same(t, upper, p.FindClone("/work/Game_Clone1"))
	assert.Same(t, lower, p.FindClone("/work/Game_clone1"))
}

func TestSamePath(t *testing.T) {
	assert.True(t, types.SamePath("/work/Game/", "/work/Game"))
	assert.True(t, types.SamePath("/work/GAME", "/work/game"))
	assert.False(t, types.SamePath("/work/Game", "/work/Game2"))
	assert.True(t, types.SameRecordPath("/work/Game/./", "/work/Game"))
}

func TestValidate(t *testing.T) {
	assert.True(t, errors.IsErrorCode(types.NewProject("").Validate(), errors.ErrInvalidInput))

	broken := &types.ProjectRecord{Path: "/work/Proj_Clone1", IsClone: true}
	assert.True(t, errors.IsErrorCode(broken.Validate(), errors.ErrInvalidInput))

	assert.NoError(t, types.NewProject("/work/Proj").Validate())
}

func TestIsLinkMode(t *testing.T) {
	assert.True(t, types.IsLinkMode(0o777|fs.ModeSymlink))
	assert.False(t, types.IsLinkMode(0o755|fs.ModeDir))
}
