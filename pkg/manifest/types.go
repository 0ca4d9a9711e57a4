// pkg/manifest/types.go
package manifest

import "errors"

// FileName is the well-known name of the manifest entry at the package root
const FileName = "manifest.json"

// Platform is a manifest platform identifier
type Platform string

const (
	// Windows identifies Windows hosts
	Windows Platform = "windows"
	// MacOS identifies macOS hosts (GOOS darwin)
	MacOS Platform = "macos"
	// Linux identifies Linux hosts
	Linux Platform = "linux"
	// IOS identifies iOS hosts
	IOS Platform = "ios"
	// Android identifies Android hosts
	Android Platform = "android"
)

// Known lists every platform identifier a manifest key is matched against
var Known = []Platform{Windows, MacOS, Linux, IOS, Android}

// IsKnown reports whether p is one of the recognized identifiers
func (p Platform) IsKnown() bool {
	for _, k := range Known {
		if p == k {
			return true
		}
	}
	return false
}

// Manifest describes a package: its name and the native module path per platform
type Manifest struct {
	Name      string              `json:"name"`
	Platforms map[Platform]string `json:"platforms"`
}

// ErrInvalid indicates the manifest content does not match the schema
var ErrInvalid = errors.New("invalid manifest")
