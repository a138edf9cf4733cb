package materializer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	perrors "github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/filesystem"
	"github.com/arthur-debert/projclone/pkg/materializer"
	"github.com/arthur-debert/projclone/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder keeps every progress callback
type recorder struct {
	mu        sync.Mutex
	scanned   []string
	total     int64
	fractions []float64
	finished  *materializer.CopyResult
	onFile    func(p materializer.Progress)
}

func (r *recorder) Scanning(label, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scanned = append(r.scanned, path)
}

func (r *recorder) Start(label string, total int64) {
	r.total = total
}

func (r *recorder) Progress(p materializer.Progress) {
	r.mu.Lock()
	r.fractions = append(r.fractions, p.Fraction())
	r.mu.Unlock()
	if r.onFile != nil {
		r.onFile(p)
	}
}

func (r *recorder) Finish(result *materializer.CopyResult) {
	r.finished = result
}

func sourceTree(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "Library")
	testutil.WriteTree(t, src, map[string]string{
		"cache.bin":              strings.Repeat("x", 1024),
		"ShaderCache/a.shader":   strings.Repeat("s", 300),
		"ShaderCache/b.shader":   strings.Repeat("s", 200),
		"Artifacts/0a/blob":      "artifact",
		"Artifacts/0b/deep/leaf": "leaf",
		"Empty/":                 "",
	})
	return src
}

func TestDirectorySize(t *testing.T) {
	src := sourceTree(t)
	m := materializer.New(filesystem.NewOS(), nil)

	size, err := m.DirectorySize(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, int64(1024+300+200+8+4), size)
}

func TestDirectorySize_Missing(t *testing.T) {
	m := materializer.New(filesystem.NewOS(), nil)

	_, err := m.DirectorySize(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, perrors.IsErrorCode(err, perrors.ErrNotFound))
}

func TestCopyWithProgress_CopiesTree(t *testing.T) {
	src := sourceTree(t)
	dst := filepath.Join(t.TempDir(), "Clone", "Library")
	rec := &recorder{}
	m := materializer.New(filesystem.NewOS(), rec)

	result, err := m.CopyWithProgress(context.Background(), src, dst, "Library")
	require.NoError(t, err)

	assert.Equal(t, testutil.ReadTree(t, src), testutil.ReadTree(t, dst))
	assert.DirExists(t, filepath.Join(dst, "Empty"))

	assert.True(t, result.Complete())
	assert.Equal(t, 5, result.Files)
	assert.Equal(t, result.TotalBytes, result.CopiedBytes)
	assert.Equal(t, result.TotalBytes, result.ProcessedBytes)
	assert.Equal(t, result.TotalBytes, rec.total)
	assert.Same(t, result, rec.finished)
	assert.Equal(t, []string{src}, rec.scanned)

	require.Len(t, rec.fractions, 5)
	for i := 1; i < len(rec.fractions); i++ {
		assert.GreaterOrEqual(t, rec.fractions[i], rec.fractions[i-1])
	}
	assert.InDelta(t, 1.0, rec.fractions[len(rec.fractions)-1], 1e-9)
}

func TestCopyWithProgress_FilesBeforeSubdirectories(t *testing.T) {
	src := sourceTree(t)
	dst := filepath.Join(t.TempDir(), "Library")
	var order []string
	rec := &recorder{onFile: func(p materializer.Progress) {
		rel, _ := filepath.Rel(src, p.Path)
		order = append(order, filepath.ToSlash(rel))
	}}

	_, err := materializer.New(filesystem.NewOS(), rec).CopyWithProgress(context.Background(), src, dst, "Library")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"cache.bin",
		"Artifacts/0a/blob",
		"Artifacts/0b/deep/leaf",
		"ShaderCache/a.shader",
		"ShaderCache/b.shader",
	}, order)
}

func TestCopyWithProgress_SamePathRefused(t *testing.T) {
	src := sourceTree(t)
	m := materializer.New(filesystem.NewOS(), nil)

	tests := []struct {
		name string
		dst  string
	}{
		{"identical", src},
		{"trailing separator", src + string(filepath.Separator)},
		{"different case", filepath.Join(filepath.Dir(src), "LIBRARY")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := m.CopyWithProgress(context.Background(), src, tt.dst, "Library")
			require.Error(t, err)
			assert.True(t, perrors.IsErrorCode(err, perrors.ErrSamePath))
			assert.Nil(t, result)
		})
	}
}

func TestCopyWithProgress_FailedFileIsRecorded(t *testing.T) {
	src := sourceTree(t)
	dst := filepath.Join(t.TempDir(), "Library")
	failing := filepath.Join(src, "ShaderCache", "a.shader")
	fsys := testutil.NewFailingFS(filesystem.NewOS(), map[string]error{
		failing: errors.New("sharing violation"),
	})
	rec := &recorder{}

	result, err := materializer.New(fsys, rec).CopyWithProgress(context.Background(), src, dst, "Library")
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, failing, result.Failed[0].Path)
	assert.ErrorContains(t, result.Failed[0].Err, "sharing violation")
	assert.False(t, result.Complete())

	assert.Equal(t, result.TotalBytes-300, result.CopiedBytes)
	assert.LessOrEqual(t, result.CopiedBytes, result.TotalBytes)
	assert.Equal(t, 4, result.Files)

	// the walk continued past the failure
	copied := testutil.ReadTree(t, dst)
	assert.NotContains(t, copied, "ShaderCache/a.shader")
	assert.Contains(t, copied, "ShaderCache/b.shader")
	assert.Contains(t, copied, "Artifacts/0b/deep/leaf")

	assert.InDelta(t, 1.0, rec.fractions[len(rec.fractions)-1], 1e-9)
}

func TestCopyWithProgress_Cancellation(t *testing.T) {
	src := sourceTree(t)
	dst := filepath.Join(t.TempDir(), "Library")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	rec.onFile = func(p materializer.Progress) { cancel() }

	result, err := materializer.New(filesystem.NewOS(), rec).CopyWithProgress(ctx, src, dst, "Library")
	require.Error(t, err)
	assert.True(t, perrors.IsErrorCode(err, perrors.ErrCancelled))
	require.NotNil(t, result)
	assert.True(t, result.Cancelled)
	assert.Equal(t, 1, result.Files)
	assert.Len(t, rec.fractions, 1)
	assert.Same(t, result, rec.finished)

	// the partial copy is left in place
	assert.FileExists(t, filepath.Join(dst, "cache.bin"))
	assert.NoFileExists(t, filepath.Join(dst, "ShaderCache", "a.shader"))
}

func TestCopyWithProgress_EmptyTree(t *testing.T) {
	src := filepath.Join(t.TempDir(), "Temp")
	require.NoError(t, os.MkdirAll(src, 0755))
	dst := filepath.Join(t.TempDir(), "Temp")

	result, err := materializer.New(filesystem.NewOS(), nil).CopyWithProgress(context.Background(), src, dst, "Temp")
	require.NoError(t, err)
	assert.DirExists(t, dst)
	assert.Zero(t, result.TotalBytes)
	assert.True(t, result.Complete())
}

func TestCopyWithProgress_RecreatesLinks(t *testing.T) {
	testutil.SkipWithoutSymlinks(t)
	src := sourceTree(t)
	outside := filepath.Join(t.TempDir(), "outside")
	testutil.WriteTree(t, outside, map[string]string{"big.bin": strings.Repeat("b", 4096)})
	require.NoError(t, os.Symlink(outside, filepath.Join(src, "shared")))

	m := materializer.New(filesystem.NewOS(), nil)
	size, err := m.DirectorySize(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, int64(1536), size, "links are not followed when sizing")

	dst := filepath.Join(t.TempDir(), "Library")
	result, err := m.CopyWithProgress(context.Background(), src, dst, "Library")
	require.NoError(t, err)
	assert.True(t, result.Complete())

	assert.True(t, testutil.IsLink(t, filepath.Join(dst, "shared")))
	target, err := os.Readlink(filepath.Join(dst, "shared"))
	require.NoError(t, err)
	assert.Equal(t, outside, target)
}

func TestProgressFraction(t *testing.T) {
	tests := []struct {
		name string
		p    materializer.Progress
		want float64
	}{
		{"empty tree", materializer.Progress{}, 1},
		{"half", materializer.Progress{ProcessedBytes: 50, TotalBytes: 100}, 0.5},
		{"clamped", materializer.Progress{ProcessedBytes: 150, TotalBytes: 100}, 1},
		{"start", materializer.Progress{TotalBytes: 100}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.p.Fraction(), 1e-9)
		})
	}
}
