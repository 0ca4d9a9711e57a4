// pkg/native/module.go
package native

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrLoad indicates the platform loader refused the library. Missing files,
	// wrong formats, unresolved dependencies and architecture mismatches are
	// all reported this way.
	ErrLoad = errors.New("failed to load native module")

	// ErrSymbolNotFound indicates the export is not in the module's table
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrModuleClosed indicates the module was used after Close
	ErrModuleClosed = errors.New("module is closed")

	// ErrUnsupported indicates dynamic loading is not available on this platform
	ErrUnsupported = errors.New("dynamic loading not supported on this platform")
)

// library is the platform loader behind a Module
type library interface {
	// entry resolves name and binds it as a func()
	entry(name string) (func(), error)
	release() error
}

// Module is a loaded native library
type Module struct {
	path string

	mu  sync.Mutex
	lib library // nil once closed
}

// Open loads the shared library at path into the process.
// Load-time initializers inside the library run before Open returns.
func Open(path string) (*Module, error) {
	lib, err := openLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return &Module{path: path, lib: lib}, nil
}

// Path returns the file the module was loaded from
func (m *Module) Path() string {
	return m.path
}

// Call resolves the export name and invokes it synchronously as func().
// The export must take no arguments and return nothing; see the package
// documentation. A missing export is reported before anything is called.
func (m *Module) Call(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lib == nil {
		return ErrModuleClosed
	}

	fn, err := m.lib.entry(name)
	if err != nil {
		return fmt.Errorf("%w: %q in %s: %w", ErrSymbolNotFound, name, m.path, err)
	}

	fn()
	return nil
}

// Has reports whether the module exports name
func (m *Module) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lib == nil {
		return false
	}
	_, err := m.lib.entry(name)
	return err == nil
}

// Close releases the module. Calls after Close fail with ErrModuleClosed.
// Closing twice is a no-op.
func (m *Module) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lib == nil {
		return nil
	}
	err := m.lib.release()
	m.lib = nil
	if err != nil {
		return fmt.Errorf("releasing %s: %w", m.path, err)
	}
	return nil
}
