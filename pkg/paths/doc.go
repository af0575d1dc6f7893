// Package paths resolves the default locations labelwires reads from and
// writes to. It follows the XDG Base Directory specification, with
// LABELWIRES_* environment variables taking precedence.
package paths
