// Package config provides configuration types for the storefront.
//
// One file configures both halves of the binary: the API server
// (server, database, auth) and the command-line client (client).
// Every key can be overridden with a STOREFRONT_-prefixed environment
// variable, e.g. STOREFRONT_AUTH_JWT_SECRET.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the top-level storefront configuration.
type Config struct {
	// Server configures the HTTP API listener.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Database configures the SQLite store behind the API.
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Auth configures session token issuance.
	Auth AuthConfig `yaml:"auth" mapstructure:"auth"`

	// Client configures the command-line client.
	Client ClientConfig `yaml:"client" mapstructure:"client"`

	// DevMode enables development features (debug logging, a fixed JWT secret).
	DevMode bool `yaml:"dev_mode" mapstructure:"dev_mode"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// HTTPAddr is the listen address. Default: 127.0.0.1:5000.
	HTTPAddr string `yaml:"http_addr" mapstructure:"http_addr" validate:"required,hostname_port"`
	// LogLevel is one of debug, info, warn, error. Default: info.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"oneof=debug info warn error"`
	// PageSize is the catalogue page size. Default: 10.
	PageSize int `yaml:"page_size" mapstructure:"page_size" validate:"min=1,max=100"`
}

// DatabaseConfig configures the SQLite database.
type DatabaseConfig struct {
	// Path is the SQLite file. Default: ./storefront.db.
	Path string `yaml:"path" mapstructure:"path" validate:"required"`
}

// AuthConfig configures bearer tokens.
type AuthConfig struct {
	// JWTSecret signs session tokens. Required outside dev mode.
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret" validate:"required,min=16"`
	// TokenTTL is the token lifetime (e.g. "720h"). Default: 720h.
	TokenTTL string `yaml:"token_ttl" mapstructure:"token_ttl" validate:"duration"`
}

// ClientConfig configures the command-line client.
type ClientConfig struct {
	// ServerURL is the API base URL. Default: http://127.0.0.1:5000.
	ServerURL string `yaml:"server_url" mapstructure:"server_url" validate:"required,url"`
	// StoragePath is the file backing the client's persisted keys.
	// Default: $HOME/.storefront/client.json.
	StoragePath string `yaml:"storage_path" mapstructure:"storage_path" validate:"required"`
	// Timeout bounds each API call (e.g. "10s"). Default: 10s.
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"duration"`
}

// devJWTSecret is only applied when DevMode is set and no secret is configured.
const devJWTSecret = "storefront-dev-secret-do-not-use"

// SetDefaults applies default values to unset fields.
func (c *Config) SetDefaults() {
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = "127.0.0.1:5000"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.PageSize == 0 {
		c.Server.PageSize = 10
	}

	if c.Database.Path == "" {
		c.Database.Path = "storefront.db"
	}

	if c.Auth.TokenTTL == "" {
		c.Auth.TokenTTL = "720h"
	}

	if c.Client.ServerURL == "" {
		c.Client.ServerURL = "http://127.0.0.1:5000"
	}
	if c.Client.StoragePath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Client.StoragePath = filepath.Join(home, ".storefront", "client.json")
		} else {
			c.Client.StoragePath = "storefront-client.json"
		}
	}
	if c.Client.Timeout == "" {
		c.Client.Timeout = "10s"
	}
}

// SetDevDefaults applies permissive defaults for development mode.
// Applied before validation so required fields are satisfied.
func (c *Config) SetDevDefaults() {
	if !c.DevMode {
		return
	}
	c.Server.LogLevel = "debug"
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = devJWTSecret
	}
}

// TokenTTLDuration returns Auth.TokenTTL parsed, or zero if it is invalid.
func (c *Config) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.Auth.TokenTTL)
	return d
}

// ClientTimeout returns Client.Timeout parsed, or zero if it is invalid.
func (c *Config) ClientTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Client.Timeout)
	return d
}
