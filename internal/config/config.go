package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the deployed load API.
const DefaultBaseURL = "https://nnef6rysh7.execute-api.us-east-1.amazonaws.com/v2"

// Config holds application configuration.
type Config struct {
	API   APIConfig
	List  ListConfig
	Cache CacheConfig
	Log   LogConfig
	UI    UIConfig
}

// APIConfig holds load API settings.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ListConfig holds pagination settings for the load list.
type ListConfig struct {
	PageSize     int   `mapstructure:"page_size"`
	PageSizes    []int `mapstructure:"page_sizes"`
	TotalRecords int   `mapstructure:"total_records"`
}

// CacheConfig holds the sqlite snapshot cache location. An empty path
// disables persistence.
type CacheConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// Location resolves the configured timezone, falling back to local time.
func (u UIConfig) Location() *time.Location {
	if u.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func defaultPath(parts ...string) string {
	return filepath.Join(append([]string{os.Getenv("HOME")}, parts...)...)
}

// Path is the config file Load reads and Save writes.
func Path() string {
	if p := os.Getenv("DRUMKIT_CONFIG"); p != "" {
		return p
	}
	return defaultPath(".config", "drumkit", "config.toml")
}

func withDefaults() *viper.Viper {
	v := viper.New()
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("list.page_size", 25)
	v.SetDefault("list.page_sizes", []int{10, 25, 50, 100})
	v.SetDefault("list.total_records", 100)
	v.SetDefault("cache.path", defaultPath(".local", "share", "drumkit", "cache.db"))
	v.SetDefault("log.path", defaultPath(".local", "state", "drumkit", "drumkit.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.timezone", "")
	return v
}

// Defaults returns the built-in configuration, ignoring files and env.
func Defaults() Config {
	var c Config
	_ = withDefaults().Unmarshal(&c)
	return c
}

// Load reads configuration from file and env. Env var overrides use prefix DRUMKIT_.
func Load() (Config, error) {
	v := withDefaults()
	v.SetConfigType("toml")

	cfgPath := os.Getenv("DRUMKIT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(defaultPath(".config", "drumkit"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DRUMKIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit DRUMKIT_CONFIG must exist; the default location is optional.
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c Config) Validate() error {
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must not be negative")
	}
	if c.List.PageSize <= 0 {
		return fmt.Errorf("list.page_size must be positive, got %d", c.List.PageSize)
	}
	if len(c.List.PageSizes) == 0 {
		return errors.New("list.page_sizes must not be empty")
	}
	for _, n := range c.List.PageSizes {
		if n <= 0 {
			return fmt.Errorf("list.page_sizes entries must be positive, got %d", n)
		}
	}
	if c.List.TotalRecords < 0 {
		return errors.New("list.total_records must not be negative")
	}
	if c.UI.Timezone != "" {
		if _, err := time.LoadLocation(c.UI.Timezone); err != nil {
			return fmt.Errorf("ui.timezone: %w", err)
		}
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("list.page_size", cfg.List.PageSize)
	v.Set("list.page_sizes", cfg.List.PageSizes)
	v.Set("list.total_records", cfg.List.TotalRecords)
	v.Set("cache.path", cfg.Cache.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.timezone", cfg.UI.Timezone)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
