// pkg/manifest/manifest.go
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Parse decodes a manifest from r.
//
// Both fields are required. A missing or null "platforms", a non-object value,
// or a non-string path is rejected instead of being treated as empty.
func Parse(r io.Reader) (*Manifest, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decoding json: %v", ErrInvalid, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a json object", ErrInvalid)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after the manifest object", ErrInvalid)
	}

	m := &Manifest{}

	name, ok := raw["name"]
	if !ok {
		return nil, fmt.Errorf("%w: missing required field \"name\"", ErrInvalid)
	}
	if err := json.Unmarshal(name, &m.Name); err != nil || isNull(name) {
		return nil, fmt.Errorf("%w: field \"name\" must be a string", ErrInvalid)
	}

	platforms, ok := raw["platforms"]
	if !ok {
		return nil, fmt.Errorf("%w: missing required field \"platforms\"", ErrInvalid)
	}
	if isNull(platforms) {
		return nil, fmt.Errorf("%w: field \"platforms\" must be an object", ErrInvalid)
	}
	if err := json.Unmarshal(platforms, &m.Platforms); err != nil {
		return nil, fmt.Errorf("%w: field \"platforms\" must map platform names to paths: %v", ErrInvalid, err)
	}

	return m, nil
}

// ParseBytes is Parse over an in-memory document
func ParseBytes(data []byte) (*Manifest, error) {
	return Parse(bytes.NewReader(data))
}

// Marshal encodes the manifest as indented JSON
func (m *Manifest) Marshal() ([]byte, error) {
	if m.Platforms == nil {
		// Never emit "platforms": null, Parse would reject it.
		cp := *m
		cp.Platforms = map[Platform]string{}
		m = &cp
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Lookup returns the module path registered for p
func (m *Manifest) Lookup(p Platform) (string, bool) {
	if m == nil || m.Platforms == nil {
		return "", false
	}
	path, ok := m.Platforms[p]
	return path, ok
}

// PlatformNames returns the manifest's platform keys in sorted order
func (m *Manifest) PlatformNames() []Platform {
	names := make([]Platform, 0, len(m.Platforms))
	for p := range m.Platforms {
		names = append(names, p)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
