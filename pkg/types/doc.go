// Package types defines the core types and interfaces used throughout projclone.
// This includes the ProjectRecord topology node and the FS interface every
// filesystem-touching package is written against.
package types
