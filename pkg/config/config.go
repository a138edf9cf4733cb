package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the config.
// The first underscore after the prefix separates section from key, so
// PROJCLONE_HOST_APP_PATH sets host.app_path.
const EnvPrefix = "PROJCLONE_"

// Config is the complete projclone configuration
type Config struct {
	Marker MarkerConfig `koanf:"marker"`
	Lock   LockConfig   `koanf:"lock"`
	Clone  CloneConfig  `koanf:"clone"`
	Host   HostConfig   `koanf:"host"`
	UI     UIConfig     `koanf:"ui"`
}

// MarkerConfig configures the per-project topology marker
type MarkerConfig struct {
	Name string `koanf:"name"`
}

// LockConfig locates the host application's lock file
type LockConfig struct {
	Path string `koanf:"path"`
}

// CloneConfig controls how clones are materialized
type CloneConfig struct {
	CopyDirs         []string `koanf:"copy_dirs"`
	DefaultArguments string   `koanf:"default_arguments"`
	NameSuffix       string   `koanf:"name_suffix"`
}

// HostConfig locates the host application
type HostConfig struct {
	AppPath string `koanf:"app_path"`
}

// UIConfig toggles interactive output
type UIConfig struct {
	Progress bool `koanf:"progress"`
}

// Sources lists the optional files layered over the embedded defaults.
// Missing files are skipped.
type Sources struct {
	UserFile    string
	ProjectFile string
}

// Default returns the embedded defaults without consulting files or env
func Default() *Config {
	cfg, err := Load(Sources{})
	if err != nil {
		// the embedded file is part of the binary; failing to parse it is a build defect
		panic(err)
	}
	return cfg
}

// Load builds the configuration: embedded defaults, then the user file,
// then the project file, then environment variables.
func Load(src Sources) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	for _, path := range []string{src.UserFile, src.ProjectFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config %s", path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ProjectFile returns the project-local config path for projectRoot
func ProjectFile(projectRoot, name string) string {
	return filepath.Join(projectRoot, name)
}

// IsCopyDir reports whether a top-level directory name must be deep-copied
func (c *Config) IsCopyDir(name string) bool {
	for _, d := range c.Clone.CopyDirs {
		if d == name {
			return true
		}
	}
	return false
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Marker.Name) == "" {
		return errors.New(errors.ErrConfigLoad, "marker.name must not be empty")
	}
	if strings.ContainsAny(c.Marker.Name, `/\`) {
		return errors.Newf(errors.ErrConfigLoad, "marker.name must be a plain file name, got %q", c.Marker.Name)
	}
	if strings.TrimSpace(c.Lock.Path) == "" {
		return errors.New(errors.ErrConfigLoad, "lock.path must not be empty")
	}
	return nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}
