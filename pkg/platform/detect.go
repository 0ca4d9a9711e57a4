// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"

	"github.com/arc-language/dllx/pkg/manifest"
)

// Platform represents the detected host platform
type Platform struct {
	OS         string            // runtime.GOOS, or the override that was requested
	Arch       string            // amd64, arm64, 386, arm
	Identifier manifest.Platform // manifest key for this host
	Extensions []string          // native library extensions expected on this host
}

// Identify maps a GOOS value to its manifest platform identifier.
// Unrecognized values are returned unchanged and never match a manifest key.
func Identify(goos string) manifest.Platform {
	switch goos {
	case "darwin":
		return manifest.MacOS
	case "windows":
		return manifest.Windows
	case "linux":
		return manifest.Linux
	case "ios":
		return manifest.IOS
	case "android":
		return manifest.Android
	default:
		return manifest.Platform(goos)
	}
}

// Current returns the manifest identifier of the running process
func Current() manifest.Platform {
	return Identify(runtime.GOOS)
}

// Detect detects the current platform.
// A non-empty override replaces runtime.GOOS; it may be a GOOS value ("darwin")
// or a manifest identifier ("macos").
func Detect(override string) *Platform {
	goos := runtime.GOOS
	if override != "" {
		goos = override
	}

	id := Identify(goos)
	return &Platform{
		OS:         goos,
		Arch:       runtime.GOARCH,
		Identifier: id,
		Extensions: LibraryExtensions(id),
	}
}

// Supported reports whether the platform maps to a known manifest identifier
func (p *Platform) Supported() bool {
	return p.Identifier.IsKnown()
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (manifest key: %s, libraries: %v)",
		p.OS, p.Arch, p.Identifier, p.Extensions)
}
