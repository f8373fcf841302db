// Package cmd provides the CLI commands for the storefront.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sentinel-Gate/storefront/internal/config"
)

var cfgFile string
var devMode bool

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - e-commerce API server and client",
	Long: `Storefront serves a users/products/orders JSON API and ships a
command-line client that keeps a local, persisted mirror of the server state.

Quick start:
  1. storefront --dev seed
  2. storefront --dev serve
  3. storefront client login --email admin@example.com --password 123456

Configuration:
  Config is loaded from storefront.yaml in the current directory,
  $HOME/.storefront/, or /etc/storefront/.

  Environment variables can override config values with the STOREFRONT_ prefix.
  Example: STOREFRONT_SERVER_HTTP_ADDR=127.0.0.1:8080

Commands:
  serve       Start the API server
  seed        Load the sample catalogue and admin account
  client      Drive the server from the command line
  version     Print version information`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./storefront.yaml)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Enable development mode (debug logging, built-in JWT secret)")
}

func initConfig() {
	config.InitViper(cfgFile)
}

// configScope selects which sections loadConfig validates.
type configScope int

const (
	scopeServer configScope = iota
	scopeClient
)

// loadConfig reads the configuration, applies the --dev override and
// validates the sections scope needs.
func loadConfig(scope configScope) (*config.Config, error) {
	cfg, err := config.LoadConfigRaw()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if devMode {
		cfg.DevMode = true
	}
	cfg.SetDevDefaults()

	switch scope {
	case scopeClient:
		err = cfg.ValidateClient()
	default:
		err = cfg.ValidateServer()
	}
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// newLogger writes text logs to stderr. DevMode always forces debug.
func newLogger(cfg *config.Config) *slog.Logger {
	level := parseLogLevel(cfg.Server.LogLevel)
	if cfg.DevMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
