// Package engine runs icon conversions end to end.
//
// A conversion reads an icon source, parses it into the vector IR, lints
// it, generates the Kotlin file and hands the result to a Sink. An Engine
// owns one run: a run token from a RunTokenGenerator and a logical clock
// that stamps every artifact with a sequence number.
//
// Batch conversion fans the parse and generate stages out to a bounded
// worker pool, then records results one at a time in source-path order,
// so a batch over the same tree always yields the same seq numbers and
// artifact IDs regardless of worker scheduling.
//
// Watch mode keeps an fsnotify watcher on a source tree and converts
// icon files as they are created or written.
package engine
