// dllx.go
package dllx

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/arc-language/dllx/pkg/archive"
	"github.com/arc-language/dllx/pkg/config"
	"github.com/arc-language/dllx/pkg/manifest"
	"github.com/arc-language/dllx/pkg/native"
	"github.com/arc-language/dllx/pkg/platform"
)

// Re-export types for convenience
type (
	Manifest = manifest.Manifest
	Platform = manifest.Platform
	Format   = archive.Format
	Stats    = archive.Stats
)

// Config holds configuration for a Loader
type Config struct {
	// WorkDir is where the package is extracted. Empty means a temporary
	// directory that is removed when the invocation ends.
	WorkDir string

	// KeepExtracted leaves the temporary work directory on disk
	KeepExtracted bool

	// Platform replaces the detected platform identifier
	Platform string

	// Debug enables debug logging
	Debug bool

	// Logger for custom logging
	Logger *log.Logger
}

// DefaultConfig returns a configuration built from the environment
func DefaultConfig() *Config {
	return FromFileConfig(config.DefaultConfig())
}

// FromFileConfig converts a persisted configuration into a Loader configuration
func FromFileConfig(c *config.Config) *Config {
	return &Config{
		WorkDir:       c.WorkDir,
		KeepExtracted: c.KeepExtracted,
		Platform:      c.Platform,
		Debug:         c.Debug,
	}
}

// Loader runs the package pipeline: read manifest, resolve platform, extract,
// load the native module and call the requested export.
type Loader struct {
	config *Config
	logger *log.Logger
}

// NewLoader creates a Loader. A nil config means DefaultConfig.
func NewLoader(cfg *Config) *Loader {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Setup logger
	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stderr, "[dllx] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Loader{config: cfg, logger: logger}
}

// LoadAndCall runs the full pipeline with the default configuration
func LoadAndCall(pkgPath, symbol string) error {
	return NewLoader(nil).LoadAndCall(pkgPath, symbol)
}

// ReadManifest reads manifest.json from the package without extracting it
func ReadManifest(pkgPath string) (*Manifest, error) {
	data, err := archive.ReadFile(pkgPath, manifest.FileName)
	if err != nil {
		if errors.Is(err, archive.ErrEntryNotFound) {
			return nil, &Error{Op: "read manifest", Package: pkgPath, Err: ErrManifestNotFound}
		}
		return nil, &Error{Op: "read manifest", Package: pkgPath, Err: err}
	}

	m, err := manifest.ParseBytes(data)
	if err != nil {
		return nil, &Error{Op: "read manifest", Package: pkgPath, Err: err}
	}
	return m, nil
}

// Platform returns the platform the loader resolves against
func (l *Loader) Platform() *platform.Platform {
	return platform.Detect(l.config.Platform)
}

// Resolve returns the manifest's module path for the loader's platform.
// ErrNoPlatformMatch is returned when the manifest has none.
func (l *Loader) Resolve(m *Manifest) (string, error) {
	plat := l.Platform()

	relPath, ok := platform.Resolve(m, plat.Identifier)
	if !ok {
		return "", &Error{
			Op:      "resolve platform",
			Package: m.Name,
			Err:     fmt.Errorf("%w: %s", ErrNoPlatformMatch, plat.Identifier),
		}
	}
	if !filepath.IsLocal(filepath.FromSlash(relPath)) {
		return "", &Error{
			Op:      "resolve platform",
			Package: m.Name,
			Err:     fmt.Errorf("%w: module path %q for %s", ErrUnsafePath, relPath, plat.Identifier),
		}
	}

	l.logger.Printf("Platform %s resolved to %s", plat, relPath)
	return relPath, nil
}

// Extract unpacks the whole package into dest
func (l *Loader) Extract(pkgPath, dest string) (*Stats, error) {
	stats, err := archive.Extract(pkgPath, dest, &archive.Options{Logger: l.logger})
	if err != nil {
		return nil, &Error{Op: "extract", Package: pkgPath, Err: err}
	}
	return stats, nil
}

// LoadAndCall reads the package manifest, resolves the module for the current
// platform, extracts the package, loads the module and invokes symbol.
//
// The first failing step aborts the rest. Nothing is extracted when no
// platform matches. The module is released before a temporary work directory
// is removed.
func (l *Loader) LoadAndCall(pkgPath, symbol string) (err error) {
	if symbol == "" {
		return &Error{Op: "call", Package: pkgPath, Err: errors.New("symbol name is required")}
	}

	m, err := ReadManifest(pkgPath)
	if err != nil {
		return err
	}
	l.logger.Printf("Read manifest for %q (%d platforms)", m.Name, len(m.Platforms))

	relPath, err := l.Resolve(m)
	if err != nil {
		return err
	}

	workDir, cleanup, err := l.workDir()
	if err != nil {
		return &Error{Op: "extract", Package: pkgPath, Err: err}
	}
	defer cleanup()

	if _, err := l.Extract(pkgPath, workDir); err != nil {
		return err
	}

	modulePath := filepath.Join(workDir, filepath.FromSlash(relPath))
	l.logger.Printf("Loading native module %s", modulePath)

	mod, err := native.Open(modulePath)
	if err != nil {
		return &Error{Op: "load", Package: m.Name, Err: err}
	}
	defer func() {
		if closeErr := mod.Close(); closeErr != nil && err == nil {
			err = &Error{Op: "release", Package: m.Name, Err: closeErr}
		}
	}()

	l.logger.Printf("Calling %s", symbol)
	if err := mod.Call(symbol); err != nil {
		return &Error{Op: "call", Package: m.Name, Err: err}
	}

	return nil
}

// workDir returns the extraction directory and the function that disposes of it
func (l *Loader) workDir() (string, func(), error) {
	if l.config.WorkDir != "" {
		dir, err := filepath.Abs(l.config.WorkDir)
		if err != nil {
			return "", nil, fmt.Errorf("resolving work directory: %w", err)
		}
		return dir, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "dllx-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp dir: %w", err)
	}

	if l.config.KeepExtracted {
		return dir, func() { l.logger.Printf("Keeping extracted package at %s", dir) }, nil
	}
	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			l.logger.Printf("Warning: removing %s: %v", dir, err)
		}
	}, nil
}
