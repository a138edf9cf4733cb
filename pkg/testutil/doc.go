// Package testutil provides fixtures shared by projclone's tests: project
// trees on a real temp filesystem, a recording command runner, and an FS
// wrapper that injects per-file failures.
package testutil
