package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// ErrNoAPIKey signals that no NewsAPI credential could be resolved from
// the keyfile or the environment.
var ErrNoAPIKey = errors.New("no API key found")

const (
	// KeyFileName is looked up next to the techpulse executable.
	KeyFileName = ".newsapi_key"

	// KeyEnvVar is the environment fallback for the NewsAPI credential.
	KeyEnvVar = "NEWSAPI_KEY"

	// OutputFileName is the default page name when no output is configured.
	OutputFileName = "index.html"
)

type HistoryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Retention string `yaml:"retention"`
}

type Config struct {
	Output  string        `yaml:"output"`
	History HistoryConfig `yaml:"history"`
}

// OutputPath resolves where the generated page goes: the configured path
// if set, otherwise index.html in the executable's directory.
func (c *Config) OutputPath() (string, error) {
	if c.Output != "" {
		return c.Output, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), OutputFileName), nil
}

func (c *Config) RetentionDuration() time.Duration {
	if c.History.Retention == "" {
		return 90 * 24 * time.Hour
	}
	// Support "Nd" day syntax
	if len(c.History.Retention) > 1 && c.History.Retention[len(c.History.Retention)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(c.History.Retention, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(c.History.Retention)
	if err != nil {
		return 90 * 24 * time.Hour
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "techpulse", "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.DataHome, "techpulse", "history.db")
}

// DefaultKeyFilePath returns the keyfile location next to the running
// executable, falling back to the bare filename if that can't be found.
func DefaultKeyFilePath() string {
	exe, err := os.Executable()
	if err != nil {
		return KeyFileName
	}
	return filepath.Join(filepath.Dir(exe), KeyFileName)
}

// ResolveAPIKey returns the NewsAPI credential: the trimmed contents of
// the keyfile when it is readable, otherwise the NEWSAPI_KEY environment
// variable, otherwise "". The key's shape is never validated here; a bad
// key surfaces on the first failed fetch.
func ResolveAPIKey(keyfile string) string {
	if data, err := os.ReadFile(keyfile); err == nil {
		return strings.TrimSpace(string(data))
	}
	return os.Getenv(KeyEnvVar)
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (or the XDG default when path is empty).
// A missing file is not an error: the embedded defaults are used and
// written out for next time. Fields absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to the config path on first run.
			// Non-fatal: just use embedded defaults on failure.
			_ = writeDefaults(path)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}
