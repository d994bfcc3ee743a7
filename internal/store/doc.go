// Package store provides SQLite-backed storage for the saved builds gallery.
//
// A saved build records which component id was chosen for each category,
// not the components themselves. Resolve turns a saved build back into a
// build.Snapshot against the current catalog, so price changes in the
// catalog show up when a build is reopened.
//
// # Tables
//
//   - builds: one row per saved build (name, author, likes, price at save time)
//   - build_parts: category to component id, cascading on delete
//
// # Ordering
//
// ListBuilds is ordered by likes DESC, created_at DESC, id ASC so ties
// resolve identically across calls.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
