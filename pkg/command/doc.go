// Package command implements reversible mutations of the connection
// registry and the undo/redo history that sequences them.
//
// A Command never holds the registry. It receives it on every Execute, Undo
// and Redo call, and keeps only the state it needs to reverse itself:
//
//	AddConnection      the connection it created
//	DeleteConnections  the connections it removed
//	EditConnection     the connection it replaced and the replacement's ID
//
// History owns two stacks. A command that fails to execute never enters
// history; a command whose undo or redo fails is dropped.
//
// A registry save failure (PERSISTENCE_FAILED) means the mutation was
// applied in memory. Commands record their undo state in that case and
// History keeps them, so the change stays reversible, while the error is
// still returned so callers can warn that the file may be stale.
package command
