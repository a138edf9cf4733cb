// Package paths provides centralized path handling for projclone.
// It resolves XDG Base Directory locations for configuration, logs and
// topology lock files, honouring projclone-specific overrides.
package paths

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/projclone/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for projclone
	EnvConfigDir = "PROJCLONE_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for projclone
	EnvStateDir = "PROJCLONE_STATE_DIR"
)

// Fixed names inside the projclone directories
const (
	// AppDirName is the directory name for projclone-specific files
	AppDirName = "projclone"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// ProjectConfigFile is the optional per-project configuration file
	ProjectConfigFile = ".projclone.toml"

	// LocksDir is the subdirectory of the state dir holding topology locks
	LocksDir = "locks"
)

// Paths provides centralized path management for projclone
type Paths interface {
	ConfigDir() string
	ConfigFilePath() string
	StateDir() string
	LockDir() string
}

type paths struct {
	configDir string
	stateDir  string
}

// New resolves the projclone directories from the environment
func New() (Paths, error) {
	p := &paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = expandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = expandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	for _, dir := range []*string{&p.configDir, &p.stateDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

func (p *paths) ConfigDir() string {
	return p.configDir
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

func (p *paths) StateDir() string {
	return p.stateDir
}

func (p *paths) LockDir() string {
	return filepath.Join(p.stateDir, LocksDir)
}

// LockPathIn derives the lock file guarding projectPath's topology inside
// dir. Lock files live outside the project so that clones never share
// them through a link.
func LockPathIn(dir, projectPath string) string {
	key := strings.ToLower(filepath.Clean(projectPath))
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(dir, hex.EncodeToString(sum[:8])+".lock")
}

// ProjectRoot resolves dir (or the working directory when empty) to an
// absolute, cleaned project root.
func ProjectRoot(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInvalidInput, "failed to get current directory")
		}
		dir = cwd
	}
	abs, err := filepath.Abs(expandHome(dir))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve %s", dir)
	}
	return abs, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
