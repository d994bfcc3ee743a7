// Package build holds the mutable partial selection for one build session and
// the totals derived from it.
//
// A build has at most one component per category. State is the single-writer
// mutable form; Snapshot is the read-only value handed to the aggregator, the
// compatibility engine, and presentation code. Selecting never validates
// compatibility: a build is configured freely and checked on demand.
//
// Nothing in this package blocks or performs I/O.
package build
