package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/dllx"
	"github.com/arc-language/dllx/pkg/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvWorkDir, "")
	t.Setenv(config.EnvPlatform, "")

	cfgFile, workDir, platform, keep, debug = "", "", "", false, false
	packOutput, packFormat, inspectEntries = "", "", false
	cfg = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writePackageDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "plugin")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"),
		[]byte(`{"name":"plugin","platforms":{"linux":"lib/plugin.so","windows":"lib/plugin.dll"}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "plugin.so"), []byte("payload"), 0o644))
	return dir
}

func TestPackInspectExtract(t *testing.T) {
	dir := writePackageDir(t)
	pkg := filepath.Join(t.TempDir(), "plugin.tar.zst")

	out, err := execute(t, "pack", dir, "-o", pkg)
	require.NoError(t, err)
	assert.Contains(t, out, "Packed plugin (2 platforms)")

	out, err = execute(t, "inspect", pkg, "--platform", "linux", "--entries")
	require.NoError(t, err)
	assert.Contains(t, out, "Package:  plugin")
	assert.Contains(t, out, "(tar.zst)")
	assert.Contains(t, out, "* linux")
	assert.Contains(t, out, "lib/plugin.so")

	out, err = execute(t, "info", pkg, "--platform", "windows")
	require.NoError(t, err)
	assert.Contains(t, out, "lib/plugin.dll is not in the package")

	out, err = execute(t, "inspect", pkg, "--platform", "ios")
	require.NoError(t, err)
	assert.Contains(t, out, "No module for ios")

	dest := filepath.Join(t.TempDir(), "out")
	out, err = execute(t, "extract", pkg, dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Extracted 2 files")

	data, err := os.ReadFile(filepath.Join(dest, "lib", "plugin.so"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestPackDefaultOutput(t *testing.T) {
	dir := writePackageDir(t)

	_, err := execute(t, "pack", dir)
	require.NoError(t, err)

	_, err = os.Stat(dir + ".dllx")
	require.NoError(t, err)

	_, err = execute(t, "pack", dir, "--format", "rar")
	assert.ErrorIs(t, err, dllx.ErrUnsupportedFormat)
}

func TestRunNoPlatformMatch(t *testing.T) {
	dir := writePackageDir(t)
	pkg := filepath.Join(t.TempDir(), "plugin.dllx")
	_, err := execute(t, "pack", dir, "-o", pkg)
	require.NoError(t, err)

	_, err = execute(t, "run", pkg, "run", "--platform", "android")
	require.Error(t, err)
	assert.ErrorIs(t, err, dllx.ErrNoPlatformMatch)
}

func TestRunRequiresArgs(t *testing.T) {
	_, err := execute(t, "run", "only-one")
	require.Error(t, err)
}

func TestPlatformCommand(t *testing.T) {
	out, err := execute(t, "platform", "--platform", "macos")
	require.NoError(t, err)
	assert.Contains(t, out, "Manifest key: macos")
	assert.Contains(t, out, ".dylib")

	out, err = execute(t, "platform", "--platform", "plan9")
	require.NoError(t, err)
	assert.Contains(t, out, "not a recognized platform")
}

func TestConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("platform: android\n"), 0o644))

	out, err := execute(t, "platform", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Manifest key: android")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dllx version "+version)
}
