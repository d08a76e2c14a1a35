// Package store provides SQLite-backed history of conversions.
//
// Every conversion run through the CLI with --db (or ROMANUS_DB) is appended
// as a Record. Records are never updated; writing the same ID twice is a no-op.
//
// # Ordering
//
// Each record gets a logical sequence number at insert time. All queries order
// by seq ASC, id ASC so listings are stable regardless of wall-clock time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Record IDs are UUIDv7 strings from UUIDv7Generator, so they also sort by
// creation time.
package store
