// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for mirrorbook.
type Config struct {
	Language    string          `mapstructure:"language"`
	CatalogFile string          `mapstructure:"catalog_file"`
	LogLevel    string          `mapstructure:"log_level"`
	LogFile     string          `mapstructure:"log_file"`
	OpenCommand string          `mapstructure:"open_command"`
	Journal     bool            `mapstructure:"journal"`
	Messaging   MessagingConfig `mapstructure:"messaging"`
	Geocoder    GeocoderConfig  `mapstructure:"geocoder"`
	Lookup      LookupConfig    `mapstructure:"lookup"`
	MCP         MCPConfig       `mapstructure:"mcp"`
}

// MessagingConfig is the handoff deep link target.
type MessagingConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Destination string `mapstructure:"destination"`
}

// GeocoderConfig configures the address search endpoint.
type GeocoderConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	Country   string        `mapstructure:"country"`
	Limit     int           `mapstructure:"limit"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// LookupConfig tunes the location field behaviour.
type LookupConfig struct {
	Debounce  time.Duration `mapstructure:"debounce"`
	BlurGrace time.Duration `mapstructure:"blur_grace"`
	MinChars  int           `mapstructure:"min_chars"`
}

// MCPConfig configures the MCP control surface.
type MCPConfig struct {
	Port int `mapstructure:"port"`
}

// defaults is also the list of keys bound to MIRRORBOOK_* variables.
var defaults = map[string]any{
	"language":              "en",
	"catalog_file":          "",
	"log_level":             "info",
	"log_file":              "",
	"open_command":          "",
	"journal":               true,
	"messaging.base_url":    "https://wa.me",
	"messaging.destination": "972524040714",
	"geocoder.endpoint":     "https://nominatim.openstreetmap.org/search",
	"geocoder.country":      "il",
	"geocoder.limit":        5,
	"geocoder.user_agent":   "mirrorbook/1.0 (+https://github.com/mark3labs/mirrorbook)",
	"geocoder.timeout":      10 * time.Second,
	"geocoder.cache_ttl":    10 * time.Minute,
	"lookup.debounce":       500 * time.Millisecond,
	"lookup.blur_grace":     200 * time.Millisecond,
	"lookup.min_chars":      2,
	"mcp.port":              0,
}

// Default returns the built-in defaults with MIRRORBOOK_* overrides applied.
// Config files are not read.
func Default() *Config {
	cfg, err := load(nil, false)
	if err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
//
// flags maps config keys to command-line flags; only flags the user actually
// set take precedence. It may be nil.
func Load(flags map[string]*pflag.Flag) (*Config, error) {
	return load(flags, true)
}

func load(flags map[string]*pflag.Flag, readFiles bool) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("mirrorbook")

	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix("MIRRORBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key := range defaults {
		envName := "MIRRORBOOK_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envName); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	if readFiles {
		globalPath := GlobalPath()
		if fileExists(globalPath) {
			v.SetConfigFile(globalPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading global config: %w", err)
			}
		}

		projectPath := ProjectPath()
		if fileExists(projectPath) {
			v.SetConfigFile(projectPath)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	for key, flag := range flags {
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", flag.Name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path:
// $XDG_CONFIG_HOME/mirrorbook/mirrorbook.yml or ~/.config/mirrorbook/mirrorbook.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mirrorbook", "mirrorbook.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mirrorbook", "mirrorbook.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "mirrorbook.yml"
}

// fileView is the on-disk layout. Durations are written as "500ms" rather
// than nanosecond integers.
type fileView struct {
	Language    string `yaml:"language"`
	CatalogFile string `yaml:"catalog_file,omitempty"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file,omitempty"`
	OpenCommand string `yaml:"open_command,omitempty"`
	Journal     bool   `yaml:"journal"`
	Messaging   struct {
		BaseURL     string `yaml:"base_url"`
		Destination string `yaml:"destination"`
	} `yaml:"messaging"`
	Geocoder struct {
		Endpoint  string `yaml:"endpoint"`
		Country   string `yaml:"country"`
		Limit     int    `yaml:"limit"`
		UserAgent string `yaml:"user_agent"`
		Timeout   string `yaml:"timeout"`
		CacheTTL  string `yaml:"cache_ttl"`
	} `yaml:"geocoder"`
	Lookup struct {
		Debounce  string `yaml:"debounce"`
		BlurGrace string `yaml:"blur_grace"`
		MinChars  int    `yaml:"min_chars"`
	} `yaml:"lookup"`
	MCP struct {
		Port int `yaml:"port"`
	} `yaml:"mcp"`
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var f fileView
	f.Language = cfg.Language
	f.CatalogFile = cfg.CatalogFile
	f.LogLevel = cfg.LogLevel
	f.LogFile = cfg.LogFile
	f.OpenCommand = cfg.OpenCommand
	f.Journal = cfg.Journal
	f.Messaging.BaseURL = cfg.Messaging.BaseURL
	f.Messaging.Destination = cfg.Messaging.Destination
	f.Geocoder.Endpoint = cfg.Geocoder.Endpoint
	f.Geocoder.Country = cfg.Geocoder.Country
	f.Geocoder.Limit = cfg.Geocoder.Limit
	f.Geocoder.UserAgent = cfg.Geocoder.UserAgent
	f.Geocoder.Timeout = cfg.Geocoder.Timeout.String()
	f.Geocoder.CacheTTL = cfg.Geocoder.CacheTTL.String()
	f.Lookup.Debounce = cfg.Lookup.Debounce.String()
	f.Lookup.BlurGrace = cfg.Lookup.BlurGrace.String()
	f.Lookup.MinChars = cfg.Lookup.MinChars
	f.MCP.Port = cfg.MCP.Port

	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return writeFile(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return writeFile(ProjectPath(), cfg)
}

func writeFile(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
