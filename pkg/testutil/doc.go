// Package testutil provides utilities for testing labelwires components.
//
// Key components:
//   - NewMemoryFS: afero-backed in-memory filesystem for fast, isolated tests
//   - FaultyFS: wraps any types.FS and fails writes on demand, used to
//     exercise persistence failure paths
//   - Record / Records: build raw connection records inline
//
// Usage guidelines:
//   - Prefer the in-memory filesystem; only datastore and CLI tests need
//     real files
//   - All test data should be defined inline, not in external files
package testutil
