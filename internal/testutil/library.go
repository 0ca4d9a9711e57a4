// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arc-language/dllx/pkg/archive"
)

// libmCandidates are the usual glibc locations of libm
var libmCandidates = []string{
	"/lib/x86_64-linux-gnu/libm.so.6",
	"/usr/lib/x86_64-linux-gnu/libm.so.6",
	"/lib/aarch64-linux-gnu/libm.so.6",
	"/usr/lib/aarch64-linux-gnu/libm.so.6",
	"/lib64/libm.so.6",
	"/usr/lib64/libm.so.6",
	"/usr/lib/libm.so.6",
}

// SharedLibrary returns a system shared library file that can be copied and
// loaded by a test, plus an export that takes no arguments and has no side
// effects. The test is skipped where no such library is known.
func SharedLibrary(t testing.TB) (path, symbol string) {
	t.Helper()

	if runtime.GOOS != "linux" {
		t.Skipf("no loadable test library known for %s", runtime.GOOS)
	}
	for _, candidate := range libmCandidates {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			// int fegetround(void); the result is discarded.
			return candidate, "fegetround"
		}
	}
	t.Skip("glibc libm not found")
	return "", ""
}

// BuildPackage writes files into a fresh directory and packs it in format.
// Names ending in "/" become directories. The package path is returned.
func BuildPackage(t testing.TB, format archive.Format, files map[string][]byte) string {
	t.Helper()

	src := t.TempDir()
	for name, content := range files {
		path := filepath.Join(src, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
	}

	out := filepath.Join(t.TempDir(), "package.dllx")
	require.NoError(t, archive.Create(src, out, format))
	return out
}
