package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mirrorbook/internal/config"
	"github.com/mark3labs/mirrorbook/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// configFlagKeys maps persistent flag names to config keys.
var configFlagKeys = map[string]string{
	"language":     "language",
	"catalog":      "catalog_file",
	"log-level":    "log_level",
	"log-file":     "log_file",
	"open-command": "open_command",
	"journal":      "journal",
	"base-url":     "messaging.base_url",
	"destination":  "messaging.destination",
	"geocoder":     "geocoder.endpoint",
	"mcp-port":     "mcp.port",
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringP("language", "l", "en", "Display language: en, he or ar")
	f.String("catalog", "", "Catalog YAML file (default: built-in catalog)")
	f.String("log-level", "info", "Log level: debug, info, warn, error")
	f.String("log-file", "", "Write logs to this file")
	f.String("open-command", "", "Command that opens the handoff URL ({{url}} is replaced)")
	f.Bool("journal", true, "Record session events on the embedded journal")
	f.String("base-url", "https://wa.me", "Messaging deep link base URL")
	f.String("destination", "972524040714", "Messaging destination number")
	f.String("geocoder", "", "Address search endpoint")
	f.Int("mcp-port", 0, "MCP server port, 0 for a random port")
}

// loadConfig loads .env, resolves configuration with the command's flags on
// top, and configures the logger from it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	_ = godotenv.Load()

	flags := make(map[string]*pflag.Flag, len(configFlagKeys))
	for name, key := range configFlagKeys {
		flags[key] = cmd.Flags().Lookup(name)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return cfg, nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
