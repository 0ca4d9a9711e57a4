package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(`{"name":"x","platforms":{"linux":"lib/x.so","macos":"lib/x.dylib"}}`))
	require.NoError(t, err)
	assert.Equal(t, "x", m.Name)
	assert.Equal(t, "lib/x.so", m.Platforms[Linux])
	assert.Equal(t, "lib/x.dylib", m.Platforms[MacOS])
	assert.Equal(t, []Platform{Linux, MacOS}, m.PlatformNames())
}

func TestParseAllowsTrailingWhitespace(t *testing.T) {
	m, err := ParseBytes([]byte("{\"name\":\"x\",\"platforms\":{}}\n\n"))
	require.NoError(t, err)
	assert.Equal(t, "x", m.Name)
}

func TestParseEmptyPlatforms(t *testing.T) {
	m, err := ParseBytes([]byte(`{"name":"x","platforms":{}}`))
	require.NoError(t, err)
	assert.Empty(t, m.Platforms)

	_, ok := m.Lookup(Linux)
	assert.False(t, ok)
}

func TestParseUnknownPlatformKeyIsKept(t *testing.T) {
	m, err := ParseBytes([]byte(`{"name":"x","platforms":{"plan9":"x.so"}}`))
	require.NoError(t, err)
	assert.Equal(t, "x.so", m.Platforms["plan9"])
	assert.False(t, Platform("plan9").IsKnown())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed json", `{"name":`},
		{"not an object", `[1,2]`},
		{"null document", `null`},
		{"missing name", `{"platforms":{}}`},
		{"null name", `{"name":null,"platforms":{}}`},
		{"numeric name", `{"name":5,"platforms":{}}`},
		{"missing platforms", `{"name":"x"}`},
		{"null platforms", `{"name":"x","platforms":null}`},
		{"array platforms", `{"name":"x","platforms":["linux"]}`},
		{"string platforms", `{"name":"x","platforms":"linux"}`},
		{"numeric path", `{"name":"x","platforms":{"linux":1}}`},
		{"trailing data", `{"name":"x","platforms":{}} junk`},
		{"second object", `{"name":"x","platforms":{}}{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestMarshalParses(t *testing.T) {
	data, err := (&Manifest{Name: "empty"}).Marshal()
	require.NoError(t, err)

	m, err := ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "empty", m.Name)
	assert.NotNil(t, m.Platforms)
}

func TestKnownPlatforms(t *testing.T) {
	for _, p := range []Platform{"windows", "macos", "linux", "ios", "android"} {
		assert.True(t, p.IsKnown(), p)
	}
	assert.False(t, Platform("darwin").IsKnown())
}
