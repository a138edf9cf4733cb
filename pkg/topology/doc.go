// Package topology persists clone relationships in per-project marker files.
//
// Every known project root holds one marker file (".clone" by default)
// describing that project: its path, whether it is a clone, where it was
// cloned from, its launch arguments and the records of its own clones. A
// directory without a marker is an unregistered project.
//
// Saving always rewrites the whole file. The store does not lock; callers
// that mutate a topology from more than one process serialize through
// Lock.
package topology
