package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTree creates files under root. Keys are slash-separated relative
// paths; a key ending in "/" creates an empty directory.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// ReadTree returns every regular file under root keyed by slash-separated
// relative path. Links are not followed.
func ReadTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	require.NoError(t, err)
	return out
}

// IsLink reports whether path is a symlink or junction
func IsLink(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err)
	return info.Mode()&(fs.ModeSymlink|fs.ModeIrregular) != 0
}

// SkipWithoutSymlinks skips tests that need unprivileged symlink creation
func SkipWithoutSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("directory links need mklink on windows")
	}
}

// ProjectFixture builds the canonical source project used across tests:
// a linked Assets tree and a deep-copied Library cache.
func ProjectFixture(t *testing.T, root string) {
	t.Helper()
	WriteTree(t, root, map[string]string{
		"Assets/Scenes/Main.unity":   "scene",
		"Assets/Scripts/Player.cs":   "class Player {}",
		"Library/cache.bin":          strings.Repeat("x", 1024),
		"Library/Artifacts/0a/blob":  "artifact",
		"ProjectSettings/Tags.asset": "tags",
		"Logs/Editor.log":            "log line",
	})
}
