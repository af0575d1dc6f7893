package testutil

import (
	"errors"
	"io/fs"
	"sync"
	"testing"

	"github.com/arthur-debert/labelwires/pkg/filesystem"
	"github.com/arthur-debert/labelwires/pkg/types"
)

// ErrInjected is the default error returned by FaultyFS.
var ErrInjected = errors.New("injected failure")

// NewMemoryFS returns an empty in-memory filesystem.
func NewMemoryFS() types.FS {
	return filesystem.NewMemory()
}

// FaultyFS delegates to a base filesystem but fails WriteFile and Rename,
// or ReadFile, while the matching failure is enabled.
type FaultyFS struct {
	types.FS

	mu         sync.Mutex
	failWrites error
	failReads  error
	writes     int
}

// NewFaultyFS wraps base.
func NewFaultyFS(base types.FS) *FaultyFS {
	return &FaultyFS{FS: base}
}

// FailWrites makes subsequent writes return err (ErrInjected when nil).
func (f *FaultyFS) FailWrites(err error) {
	if err == nil {
		err = ErrInjected
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrites = err
}

// FailReads makes subsequent reads return err (ErrInjected when nil).
func (f *FaultyFS) FailReads(err error) {
	if err == nil {
		err = ErrInjected
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failReads = err
}

// Heal re-enables reads and writes.
func (f *FaultyFS) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrites = nil
	f.failReads = nil
}

// Writes returns the number of successful WriteFile calls.
func (f *FaultyFS) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *FaultyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f.mu.Lock()
	failure := f.failWrites
	f.mu.Unlock()
	if failure != nil {
		return &fs.PathError{Op: "write", Path: name, Err: failure}
	}
	if err := f.FS.WriteFile(name, data, perm); err != nil {
		return err
	}
	f.mu.Lock()
	f.writes++
	f.mu.Unlock()
	return nil
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	f.mu.Lock()
	failure := f.failReads
	f.mu.Unlock()
	if failure != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: failure}
	}
	return f.FS.ReadFile(name)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	f.mu.Lock()
	failure := f.failWrites
	f.mu.Unlock()
	if failure != nil {
		return &fs.PathError{Op: "rename", Path: newpath, Err: failure}
	}
	return f.FS.Rename(oldpath, newpath)
}

// ReadString reads path from fs, failing the test on error.
func ReadString(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// WriteString writes content to path in fs, failing the test on error.
func WriteString(t *testing.T, fsys types.FS, path, content string) {
	t.Helper()
	if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
