// Package clones manages the lifecycle of project clones.
//
// A clone is a sibling directory of a source project. Top-level directories
// named in clone.copy_dirs (caches, logs, temp state) are deep-copied into
// it; every other top-level directory is a link back into the source. The
// Manager creates clones, registers them in the source's marker, detects
// whether a project is open in the host application, launches it and
// deletes clones without touching the linked source content.
package clones
