// Package config handles configuration management for projclone.
// Values are layered from the embedded defaults, the user config file,
// an optional project-local file and PROJCLONE_* environment variables.
package config
