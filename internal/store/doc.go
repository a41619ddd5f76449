// Package store provides SQLite-backed history of generated files.
//
// Two tables make up the history:
//   - runs: one row per generator invocation, keyed by its UUIDv7 token
//   - artifacts: one row per generated file, with source and output hashes
//
// # Ordering
//
// Artifacts are ordered by their logical sequence number within a run,
// never by wall-clock time. Every query that returns artifacts uses
// ORDER BY seq ASC, id ASC COLLATE BINARY so listings are reproducible.
//
// # Connections
//
// Pragmas travel in the go-sqlite3 DSN so they hold on every connection:
// WAL journaling, synchronous=NORMAL, a 5s busy timeout and enforced
// foreign keys. The schema version lives in PRAGMA user_version; Open
// migrates older files forward and refuses newer ones.
//
// Artifact IDs are content-addressed through ir.ArtifactID.
package store
