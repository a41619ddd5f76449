// Package sink implements the destinations generated files are written to.
//
// Every sink satisfies engine.Sink. Dir writes Kotlin files to disk,
// Store records artifacts in the SQLite history, Writer streams file
// content to an io.Writer, and Multi fans one write out to several sinks.
package sink
