// Package storage persists the last observed leaderboard snapshot.
//
// Drivers:
//   - "file": one JSON document on disk, rewritten atomically (default)
//   - "memory": process-local, used by tests and dry runs
package storage
