// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Server    ServerConfig
	Catalog   CatalogConfig
	Store     StoreConfig
	Concierge ConciergeConfig
	Anthropic AnthropicConfig
	Weather   WeatherConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 30s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// CatalogConfig holds book catalog configuration.
type CatalogConfig struct {
	// DataPath is the directory containing the seed corpus JSON files.
	DataPath string
}

// StoreConfig holds persistent store configuration.
type StoreConfig struct {
	// BasePath is the directory for the Badger database.
	BasePath string
}

// ConciergeConfig holds recommendation pipeline configuration.
type ConciergeConfig struct {
	// Mode selects the candidate pool source: edition, catalog, or blend.
	Mode string
	// FinalListSize is the number of suggestions returned to the client.
	FinalListSize int
	// CatalogLimit bounds the tag-filtered catalog pool.
	CatalogLimit int
	// RawFallbackLimit bounds the prefix slice used when tag filtering is empty.
	RawFallbackLimit int
	// BlendLimit bounds the catalog portion of a blended pool.
	BlendLimit int
	// BalancedMinMatches is the minimum matching-author count sought when
	// shaping a balanced pool.
	BalancedMinMatches int
	// EditionMinShare is the minimum matching-author fraction for the
	// AI-curated monthly edition.
	EditionMinShare float64
}

// AnthropicConfig holds generative backend configuration.
type AnthropicConfig struct {
	APIKey            string
	Model             string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
}

// WeatherConfig holds OpenWeatherMap configuration.
type WeatherConfig struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Directory containing the catalog JSON files")
	storePath := flag.String("store-path", "", "Directory for the persistent store")

	// Server flags
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 30s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	// Concierge flags
	conciergeMode := flag.String("concierge-mode", "", "Candidate pool mode (edition, catalog, blend)")

	// Backend flags
	anthropicModel := flag.String("anthropic-model", "", "Anthropic model identifier")
	anthropicTimeout := flag.String("anthropic-timeout", "", "Anthropic request timeout (default: 60s)")
	weatherTimeout := flag.String("weather-timeout", "", "Weather request timeout (default: 10s)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	// Parse flags but don't exit on error - we want to handle it gracefully.
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Catalog: CatalogConfig{
			DataPath: getConfigValue(*dataPath, "DATA_PATH", "data"),
		},
		Store: StoreConfig{
			BasePath: getConfigValue(*storePath, "STORE_PATH", ""),
		},
		Concierge: ConciergeConfig{
			Mode:               getConfigValue(*conciergeMode, "CONCIERGE_MODE", "blend"),
			FinalListSize:      getIntConfigValue("", "CONCIERGE_FINAL_LIST_SIZE", 3),
			CatalogLimit:       getIntConfigValue("", "CONCIERGE_CATALOG_LIMIT", 120),
			RawFallbackLimit:   getIntConfigValue("", "CONCIERGE_RAW_FALLBACK_LIMIT", 40),
			BlendLimit:         getIntConfigValue("", "CONCIERGE_BLEND_LIMIT", 60),
			BalancedMinMatches: getIntConfigValue("", "CONCIERGE_BALANCED_MIN_MATCHES", 20),
			EditionMinShare:    0.4,
		},
		Anthropic: AnthropicConfig{
			APIKey:            getConfigValue("", "ANTHROPIC_API_KEY", ""),
			Model:             getConfigValue(*anthropicModel, "ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
			BaseURL:           getConfigValue("", "ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
			RequestsPerMinute: getIntConfigValue("", "ANTHROPIC_REQUESTS_PER_MINUTE", 20),
		},
		Weather: WeatherConfig{
			APIKey:            getConfigValue("", "OPENWEATHER_API_KEY", ""),
			BaseURL:           getConfigValue("", "OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
			RequestsPerMinute: getIntConfigValue("", "OPENWEATHER_REQUESTS_PER_MINUTE", 30),
		},
	}

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "30s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	// Parse outbound client timeouts.
	anthropicTimeoutStr := getConfigValue(*anthropicTimeout, "ANTHROPIC_TIMEOUT", "60s")
	anthropicTimeoutDuration, err := time.ParseDuration(anthropicTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid anthropic timeout %q: %w", anthropicTimeoutStr, err)
	}
	cfg.Anthropic.Timeout = anthropicTimeoutDuration

	weatherTimeoutStr := getConfigValue(*weatherTimeout, "OPENWEATHER_TIMEOUT", "10s")
	weatherTimeoutDuration, err := time.ParseDuration(weatherTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid weather timeout %q: %w", weatherTimeoutStr, err)
	}
	cfg.Weather.Timeout = weatherTimeoutDuration

	// Expand and validate paths.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	if err := cfg.expandStorePath(); err != nil {
		return nil, fmt.Errorf("invalid store path: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

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

	validModes := map[string]bool{
		"edition": true,
		"catalog": true,
		"blend":   true,
	}
	if !validModes[c.Concierge.Mode] {
		return fmt.Errorf("invalid concierge mode: %s (must be edition, catalog, or blend)", c.Concierge.Mode)
	}

	if c.Concierge.FinalListSize < 2 || c.Concierge.FinalListSize > 5 {
		return fmt.Errorf("invalid final list size: %d (must be between 2 and 5)", c.Concierge.FinalListSize)
	}

	if c.Catalog.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	if c.Store.BasePath == "" {
		return errors.New("store path cannot be empty after expansion")
	}

	// API keys may be empty - the concierge degrades to fallback suggestions
	// and the context endpoint degrades to a weatherless context.

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
func (c *Config) expandDataPath() error {
	expanded, err := expandPath(c.Catalog.DataPath, "")
	if err != nil {
		return err
	}
	c.Catalog.DataPath = expanded
	return nil
}

// expandStorePath expands ~ and makes the path absolute.
// Defaults to ~/Reserve/store if not specified.
func (c *Config) expandStorePath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Reserve", "store")

	expanded, err := expandPath(c.Store.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Store.BasePath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
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

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
