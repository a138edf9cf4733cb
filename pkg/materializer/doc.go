// Package materializer copies directory trees with byte-accounted progress.
//
// A copy first sums the size of the whole source tree, then walks it depth
// first, files before subdirectories, reporting the running fraction after
// every file. Copying is best effort: a file that cannot be copied is
// recorded in the CopyResult and the walk moves on. Nothing is rolled back,
// so a failed or cancelled copy can leave a partial destination behind.
package materializer
