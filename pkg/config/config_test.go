package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv(EnvWorkDir, "")
	t.Setenv(EnvPlatform, "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadConfigYAML(t *testing.T) {
	t.Setenv(EnvWorkDir, "")
	t.Setenv(EnvPlatform, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_dir: /tmp/x\nkeep_extracted: true\nplatform: macos\ndebug: true\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{WorkDir: "/tmp/x", KeepExtracted: true, Platform: "macos", Debug: true}, cfg)
}

func TestLoadConfigTOML(t *testing.T) {
	t.Setenv(EnvWorkDir, "")
	t.Setenv(EnvPlatform, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("work_dir = \"/tmp/y\"\nplatform = \"windows\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/y", cfg.WorkDir)
	assert.Equal(t, "windows", cfg.Platform)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_dir: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvWorkDir, "/from/env")
	t.Setenv(EnvPlatform, "android")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_dir: /from/file\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.WorkDir)
	assert.Equal(t, "android", cfg.Platform)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Setenv(EnvWorkDir, "")
	t.Setenv(EnvPlatform, "")

	want := &Config{WorkDir: "/w", KeepExtracted: true, Platform: "linux"}
	for _, name := range []string{"config.yaml", "config.toml"} {
		path := filepath.Join(t.TempDir(), "nested", name)
		require.NoError(t, SaveConfig(want, path))

		got, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
}
