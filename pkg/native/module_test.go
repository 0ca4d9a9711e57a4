package native

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/dllx/internal/testutil"
)

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.so"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoad)
}

func TestOpenNotALibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.so")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoad)
}

func TestCallLifecycle(t *testing.T) {
	lib, symbol := testutil.SharedLibrary(t)

	mod, err := Open(lib)
	require.NoError(t, err)
	assert.Equal(t, lib, mod.Path())

	assert.True(t, mod.Has(symbol))
	require.NoError(t, mod.Call(symbol))

	err = mod.Call("dllx_no_such_export")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSymbolNotFound)
	assert.False(t, mod.Has("dllx_no_such_export"))

	require.NoError(t, mod.Close())
	require.NoError(t, mod.Close())

	err = mod.Call(symbol)
	assert.ErrorIs(t, err, ErrModuleClosed)
	assert.False(t, mod.Has(symbol))
}
