// errors.go
package dllx

import (
	"errors"
	"fmt"

	"github.com/arc-language/dllx/pkg/archive"
	"github.com/arc-language/dllx/pkg/manifest"
	"github.com/arc-language/dllx/pkg/native"
)

var (
	// ErrManifestNotFound indicates the package has no manifest.json at its root
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrInvalidManifest indicates manifest.json does not match the schema
	ErrInvalidManifest = manifest.ErrInvalid

	// ErrNoPlatformMatch indicates the manifest has no module for this platform
	ErrNoPlatformMatch = errors.New("no platform match")

	// ErrLoad indicates the platform loader refused the native module
	ErrLoad = native.ErrLoad

	// ErrSymbolNotFound indicates the requested export is not in the module
	ErrSymbolNotFound = native.ErrSymbolNotFound

	// ErrModuleClosed indicates a module was used after being released
	ErrModuleClosed = native.ErrModuleClosed

	// ErrUnsupportedFormat indicates the package container is not recognized
	ErrUnsupportedFormat = archive.ErrUnsupportedFormat

	// ErrUnsafePath indicates a package path that would leave the work directory
	ErrUnsafePath = archive.ErrUnsafePath
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package path or name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
