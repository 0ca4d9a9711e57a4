// pkg/platform/resolver.go
package platform

import (
	"github.com/arc-language/dllx/pkg/manifest"
)

// Resolve returns the relative module path the manifest registers for id.
// The second result is false when id is not a recognized identifier or the
// manifest has no entry for it; absence is an ordinary outcome, not an error.
func Resolve(m *manifest.Manifest, id manifest.Platform) (string, bool) {
	if !id.IsKnown() {
		return "", false
	}
	return m.Lookup(id)
}

// ResolveCurrent resolves against the running process's platform
func ResolveCurrent(m *manifest.Manifest) (string, bool) {
	return Resolve(m, Current())
}
