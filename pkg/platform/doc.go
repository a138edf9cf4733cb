// Package platform is the process boundary of projclone.
//
// A Platform bundles the operations whose command syntax differs between
// operating systems: creating a directory link (a junction on Windows, a
// symbolic link elsewhere), launching the host application, bulk-deleting a
// tree and revealing a directory in the file manager. One implementation
// exists per platform family and is selected once with Detect.
//
// Every external command goes through a Runner so tests can record and fake
// them.
package platform
