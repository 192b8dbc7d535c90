// Package config provides client configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultAPIBaseURL is used when no base URL is configured. It matches the
// address the backend binds to when run locally.
const DefaultAPIBaseURL = "http://localhost:8080"

// Config holds the client configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	API    APIConfig
	Data   DataConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string
}

// APIConfig holds backend connection configuration.
type APIConfig struct {
	// BaseURL is the backend base URL (default: http://localhost:8080).
	BaseURL string
}

// DataConfig holds local persistence configuration.
type DataConfig struct {
	// Path is the directory for the persisted session store (default: ~/.rentify).
	// Empty after expansion means run with an in-memory session only.
	Path string
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
//
// args are the program arguments after the binary name. Parsing stops at the
// first non-flag argument; whatever remains (the subcommand and its own
// arguments) is returned alongside the config.
func Load(args []string) (*Config, []string, error) {
	fs := flag.NewFlagSet("rentify", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Log format (json, pretty)")
	apiURL := fs.String("api-url", "", "Backend base URL")
	dataPath := fs.String("data-path", "", "Directory for the persisted session")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "RENTIFY_ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:  getConfigValue(*logLevel, "RENTIFY_LOG_LEVEL", "info"),
			Format: getConfigValue(*logFormat, "RENTIFY_LOG_FORMAT", ""),
		},
		API: APIConfig{
			BaseURL: getConfigValue(*apiURL, "RENTIFY_API_URL", DefaultAPIBaseURL),
		},
		Data: DataConfig{
			Path: getConfigValue(*dataPath, "RENTIFY_DATA_PATH", ""),
		},
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, fs.Args(), nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.API.BaseURL == "" {
		return errors.New("api base url cannot be empty")
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")

	return nil
}

// expandDataPath expands ~ and makes the path absolute.
// Defaults to ~/.rentify when unset.
func (c *Config) expandDataPath() error {
	path := c.Data.Path
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// No home directory, e.g. stripped-down containers. Run with an
			// in-memory session instead of failing startup.
			c.Data.Path = ""
			return nil
		}
		c.Data.Path = filepath.Join(homeDir, ".rentify")
		return nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	c.Data.Path = filepath.Clean(path)
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Env vars take precedence over .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
