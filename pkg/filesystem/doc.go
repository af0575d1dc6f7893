// Package filesystem provides filesystem implementations for labelwires.
//
// This package contains implementations of the types.FS interface,
// backed by the OS filesystem or by an afero.Fs.
package filesystem
