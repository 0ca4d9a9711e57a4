// pkg/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// EnvWorkDir overrides the extraction directory
	EnvWorkDir = "DLLX_WORK_DIR"
	// EnvPlatform overrides the detected platform identifier
	EnvPlatform = "DLLX_PLATFORM"
)

// Config holds dllx configuration
type Config struct {
	// WorkDir is where packages are extracted. Empty means a fresh temporary
	// directory per invocation.
	WorkDir string `yaml:"work_dir" toml:"work_dir"`

	// KeepExtracted leaves the temporary work directory on disk
	KeepExtracted bool `yaml:"keep_extracted" toml:"keep_extracted"`

	// Platform replaces the detected platform identifier (e.g. "linux", "macos")
	Platform string `yaml:"platform" toml:"platform"`

	// Debug enables debug logging
	Debug bool `yaml:"debug" toml:"debug"`
}

// DefaultConfig returns a default configuration with environment overrides applied
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	return cfg
}

// DefaultPath returns $HOME/.config/dllx/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dllx", "config.yaml"), nil
}

// LoadConfig loads configuration from file.
// An empty path means DefaultPath. A missing file yields the defaults.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if isTOML(path) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnv()
	return &cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf strings.Builder
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		data = []byte(buf.String())
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	if dir := os.Getenv(EnvWorkDir); dir != "" {
		c.WorkDir = dir
	}
	if p := os.Getenv(EnvPlatform); p != "" {
		c.Platform = p
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
