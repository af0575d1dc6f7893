// Package types defines interfaces shared across labelwires packages that
// would otherwise create import cycles, most notably the FS abstraction used
// by the datastore and export packages.
package types
