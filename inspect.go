// inspect.go
package dllx

import (
	"os"
	"path/filepath"

	"github.com/arc-language/dllx/pkg/archive"
	"github.com/arc-language/dllx/pkg/manifest"
	"github.com/arc-language/dllx/pkg/platform"
)

// PackageInfo describes a package without extracting or loading it
type PackageInfo struct {
	Path     string
	Format   Format
	Manifest *Manifest
	Platform *platform.Platform

	// ModulePath is the module registered for Platform, empty when none is
	ModulePath string
	// ModuleInPackage reports whether ModulePath names a file in the package
	ModuleInPackage bool

	Entries []archive.Entry
}

// Inspect reads the manifest and entry list of a package and resolves the
// module for the loader's platform. A missing platform match is reported in
// the result, not as an error.
func (l *Loader) Inspect(pkgPath string) (*PackageInfo, error) {
	format, err := archive.DetectFormat(pkgPath)
	if err != nil {
		return nil, &Error{Op: "inspect", Package: pkgPath, Err: err}
	}

	m, err := ReadManifest(pkgPath)
	if err != nil {
		return nil, err
	}

	entries, err := archive.List(pkgPath)
	if err != nil {
		return nil, &Error{Op: "inspect", Package: pkgPath, Err: err}
	}

	info := &PackageInfo{
		Path:     pkgPath,
		Format:   format,
		Manifest: m,
		Platform: l.Platform(),
		Entries:  entries,
	}

	if relPath, ok := platform.Resolve(m, info.Platform.Identifier); ok {
		info.ModulePath = relPath
		for _, e := range entries {
			if !e.IsDir() && e.Name == relPath {
				info.ModuleInPackage = true
				break
			}
		}
	}

	return info, nil
}

// Pack validates srcDir/manifest.json and writes srcDir as a package to out
func (l *Loader) Pack(srcDir, out string, format Format) (*Manifest, error) {
	f, err := os.Open(filepath.Join(srcDir, manifest.FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Op: "pack", Package: srcDir, Err: ErrManifestNotFound}
		}
		return nil, &Error{Op: "pack", Package: srcDir, Err: err}
	}
	defer f.Close()

	m, err := manifest.Parse(f)
	if err != nil {
		return nil, &Error{Op: "pack", Package: srcDir, Err: err}
	}

	for _, p := range m.PlatformNames() {
		relPath := m.Platforms[p]
		if !p.IsKnown() {
			l.logger.Printf("Warning: platform %q is not recognized and will never match", p)
		}
		if _, err := os.Stat(filepath.Join(srcDir, filepath.FromSlash(relPath))); err != nil {
			l.logger.Printf("Warning: %s module %s is not in %s", p, relPath, srcDir)
		} else if p.IsKnown() && !platform.HasLibraryExtension(p, relPath) {
			l.logger.Printf("Warning: %s module %s does not have a %v extension", p, relPath, platform.LibraryExtensions(p))
		}
	}

	if err := archive.Create(srcDir, out, format); err != nil {
		return nil, &Error{Op: "pack", Package: m.Name, Err: err}
	}
	l.logger.Printf("Packed %q into %s (%s)", m.Name, out, format)

	return m, nil
}
