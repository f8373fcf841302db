package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// InitViper initializes Viper with the configuration file and environment variables.
// If configFile is empty, it searches for storefront.yaml/.yml in standard locations.
// The search requires an explicit YAML extension so the "storefront" binary
// in the working directory is never picked up as a config file.
func InitViper(configFile string) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if found := findConfigFile(); found != "" {
		viper.SetConfigFile(found)
	} else {
		viper.SetConfigName("storefront")
		viper.SetConfigType("yaml")
	}

	// STOREFRONT_SERVER_HTTP_ADDR -> server.http_addr
	viper.SetEnvPrefix("STOREFRONT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	bindNestedEnvKeys()
}

func findConfigFile() string {
	home, _ := os.UserHomeDir()
	paths := []string{
		".",
		filepath.Join(home, ".storefront"),
	}
	if runtime.GOOS == "windows" {
		if pd := os.Getenv("ProgramData"); pd != "" {
			paths = append(paths, filepath.Join(pd, "storefront"))
		}
	} else {
		paths = append(paths, "/etc/storefront")
	}
	return findConfigFileInPaths(paths)
}

// findConfigFileInPaths returns the first storefront.yaml or .yml found in
// paths, or "" if none exists.
func findConfigFileInPaths(paths []string) string {
	for _, dir := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, "storefront"+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// bindNestedEnvKeys binds every nested key so env vars override values
// that are absent from the config file.
func bindNestedEnvKeys() {
	_ = viper.BindEnv("server.http_addr")
	_ = viper.BindEnv("server.log_level")
	_ = viper.BindEnv("server.page_size")

	_ = viper.BindEnv("database.path")

	_ = viper.BindEnv("auth.jwt_secret")
	_ = viper.BindEnv("auth.token_ttl")

	_ = viper.BindEnv("client.server_url")
	_ = viper.BindEnv("client.storage_path")
	_ = viper.BindEnv("client.timeout")

	_ = viper.BindEnv("dev_mode")
}

// LoadConfigRaw reads the configuration file and applies defaults,
// but does NOT apply dev defaults or validate.
// Callers apply CLI overrides (e.g. --dev), then SetDevDefaults and
// ValidateServer or ValidateClient.
func LoadConfigRaw() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: run on env vars and defaults.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()
	return &cfg, nil
}

// LoadConfig reads the configuration, applies all defaults and validates
// every section.
func LoadConfig() (*Config, error) {
	cfg, err := LoadConfigRaw()
	if err != nil {
		return nil, err
	}
	cfg.SetDevDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ConfigFileUsed returns the path of the loaded configuration file, or ""
// when running on env vars only.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
