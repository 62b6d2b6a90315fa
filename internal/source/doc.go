// Package source discovers and loads Corsac source files (.crs).
//
// A Scanner walks a directory tree depth-first and collects every
// non-directory entry whose name ends with the configured suffix. A Loader
// reads one file at a time and returns its content as text. Both work on a
// billy.Filesystem so callers can point them at the real disk (NativeFS)
// or at an in-memory tree.
//
// Failures are returned, never fatal: a directory that cannot be read
// produces a *TraversalError, a file that cannot be read or is not valid
// UTF-8 produces a *ReadError. Callers decide whether to skip, collect or
// abort.
package source
