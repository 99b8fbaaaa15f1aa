package sweep

import (
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/specialistvlad/sweepgrid/internal/fsutil"
)

// Sink receives the generator's output.
type Sink interface {
	// MkdirAll creates the output directory. It must not fail when the
	// directory already exists.
	MkdirAll(dir string) error
	// WriteFile creates or truncates path and writes data to it.
	WriteFile(path string, data []byte) error
}

// DirSink writes to the local filesystem.
type DirSink struct{}

// MkdirAll implements Sink.
func (DirSink) MkdirAll(dir string) error {
	return fsutil.EnsureDir(dir)
}

// WriteFile implements Sink.
func (DirSink) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// MemSink keeps every written file in memory. It backs dry runs and tests.
type MemSink struct {
	mu    sync.Mutex
	dirs  map[string]struct{}
	files map[string][]byte
}

// NewMemSink creates an empty in-memory sink.
func NewMemSink() *MemSink {
	return &MemSink{
		dirs:  make(map[string]struct{}),
		files: make(map[string][]byte),
	}
}

// MkdirAll implements Sink.
func (m *MemSink) MkdirAll(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[dir] = struct{}{}
	return nil
}

// WriteFile implements Sink.
func (m *MemSink) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = slices.Clone(data)
	return nil
}

// File returns the contents written to path.
func (m *MemSink) File(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	return data, ok
}

// Paths returns every written path in sorted order.
func (m *MemSink) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.files))
}

// HasDir reports whether MkdirAll was called for dir.
func (m *MemSink) HasDir(dir string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.dirs[dir]
	return ok
}
