// pkg/platform/utils.go
package platform

import (
	"path/filepath"
	"strings"

	"github.com/arc-language/dllx/pkg/manifest"
)

// LibraryExtensions returns the shared library extensions native modules use on id
func LibraryExtensions(id manifest.Platform) []string {
	switch id {
	case manifest.Windows:
		return []string{".dll"}
	case manifest.MacOS, manifest.IOS:
		return []string{".dylib", ".so", ".bundle"}
	case manifest.Linux, manifest.Android:
		return []string{".so"}
	default:
		return nil
	}
}

// HasLibraryExtension reports whether path looks like a native module for id.
// Versioned names such as libfoo.so.1 are accepted.
func HasLibraryExtension(id manifest.Platform, path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, ext := range LibraryExtensions(id) {
		if strings.HasSuffix(base, ext) || strings.Contains(base, ext+".") {
			return true
		}
	}
	return false
}
