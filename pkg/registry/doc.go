// Package registry owns the authoritative, ordered list of connections.
//
// A Registry enforces that no two stored connections are equal (in either
// direction) and writes the full list to its output file after every
// successful mutation. Each mutation and its save run under one lock, so the
// in-memory list and the file never diverge under concurrent callers.
//
// When a save fails after the in-memory change has been applied, the
// mutation is kept and a PERSISTENCE_FAILED error is returned. Callers must
// read that as "changed in memory, file may be stale".
package registry
