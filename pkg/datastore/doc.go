// Package datastore reads and writes connection files.
//
// A connection file is a JSON array of objects with the six endpoint fields.
// Identifiers are optional on read and never written. Saves go through a
// temporary sibling file and a rename, so a failed save leaves the previous
// file untouched.
package datastore
