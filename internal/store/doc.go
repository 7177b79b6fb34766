// Package store provides SQLite-backed storage for the rename log.
//
// Each pipeline run writes one row to runs and one row per pass decision to
// decisions. The log is append-only: a run is written in a single
// transaction and never updated.
//
// # Ordering
//
// Decisions are read back ORDER BY seq ASC. Seq is the pipeline's logical
// clock, so reads are identical no matter when the run happened.
//
// # Collisions
//
// Two originals may hash to the same digest. The schema has no uniqueness
// constraint on renamed names and the store does not detect collisions.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
