package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a configuration value that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Constants for default values.
const (
	DefaultFormat   = FormatAuto
	DefaultTheme    = "default"
	DefaultLogLevel = "warn"

	localConfigName = ".parsetest.yaml"
	userConfigName  = "config.yaml"
)

// FileConfig is the on-disk YAML configuration. Pointer fields distinguish
// "unset" from an explicit false.
type FileConfig struct {
	PrintPassed  *bool  `yaml:"print_passed"`
	PrintSkipped *bool  `yaml:"print_skipped"`
	PrintFailed  *bool  `yaml:"print_failed"`
	LongNames    *bool  `yaml:"long_names"`
	Format       string `yaml:"format,omitempty"`
	Theme        string `yaml:"theme,omitempty"`
	NoColor      *bool  `yaml:"no_color"`
	Pager        *bool  `yaml:"pager"`
	LogLevel     string `yaml:"log_level,omitempty"`
}

// LoadFile reads and parses the YAML file at path.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Discover returns the first config file that exists: the local
// .parsetest.yaml, then the per-user file. It returns "" when neither does.
func Discover() string {
	if _, err := os.Stat(localConfigName); err == nil {
		return localConfigName
	}

	configHome, err := os.UserConfigDir()
	// An empty or root config dir is not usable for a per-user path.
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	userPath := filepath.Join(configHome, "parsetest", userConfigName)
	if _, err := os.Stat(userPath); err == nil {
		return userPath
	}
	return ""
}

// Load reads the config file at path, or the discovered one when path is
// empty. A missing discovered file is not an error; a missing explicit one is.
func Load(path string) (*FileConfig, string, error) {
	if path == "" {
		path = Discover()
		if path == "" {
			return &FileConfig{}, "", nil
		}
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
