// Package session keeps one build per client session for the HTTP service.
//
// The compatibility engine is stateless; a Session owns the mutable
// build.State a client edits between checks. Sessions live only in
// memory and are bounded by a least-recently-used cache, so an idle
// session may disappear when the limit is reached.
package session
