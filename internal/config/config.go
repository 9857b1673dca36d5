package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "kanboard"

// Config represents the application configuration
type Config struct {
	DataDir     string        `yaml:"data_dir"`
	LogLevel    string        `yaml:"log_level"`
	DBPath      string        `yaml:"db_path"`
	SocketPath  string        `yaml:"socket_path"`
	APIAddr     string        `yaml:"api_addr"`
	MetricsAddr string        `yaml:"metrics_addr"`
	Debounce    time.Duration `yaml:"debounce"`

	// EvictFailedPlaceholders drops the optimistic task when creation fails.
	// nil means the default (true).
	EvictFailedPlaceholders *bool `yaml:"evict_failed_placeholders,omitempty"`

	KeyMappings KeyMappings `yaml:"key_mappings"`
	ColorScheme ColorScheme `yaml:"theme"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// ShouldEvictPlaceholders reports the effective evict_failed_placeholders value
func (c *Config) ShouldEvictPlaceholders() bool {
	return c.EvictFailedPlaceholders == nil || *c.EvictFailedPlaceholders
}

// LogDir is where logging.Init writes kanboard.log
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// loadThemeFile loads and merges theme from KANBOARD_THEME_FILE
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("KANBOARD_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		cfg := &Config{}
		return finish(cfg), nil
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the config at path, falling back to defaults when it is missing
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	return finish(cfg), nil
}

func finish(cfg *Config) *Config {
	loadThemeFile(cfg)
	applyEnv(cfg)
	cfg.applyDefaults()
	return cfg
}

// applyEnv lets the environment override file values
func applyEnv(c *Config) {
	if dir := os.Getenv("KANBOARD_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if level := os.Getenv("KANBOARD_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config as YAML to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Path returns the path to the config file
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

func defaultDataDir() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName)
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "share", appName)
	}
	return filepath.Join(os.TempDir(), appName)
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, appName+".db")
	}
	if c.SocketPath == "" {
		c.SocketPath = filepath.Join(c.DataDir, appName+".sock")
	}
	if c.APIAddr == "" {
		c.APIAddr = "127.0.0.1:8080"
	}
	if c.Debounce <= 0 {
		c.Debounce = 100 * time.Millisecond
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
