// Package config provides configuration management for lectern using Viper
// for loading from files, environment variables and command-line flags.
//
// Configuration is read from .lectern.yml (or the file named by --config or
// LECTERN_CONFIG_FILE). Every key can be overridden with a LECTERN_
// environment variable, dots replaced by underscores, e.g.
// LECTERN_SERVER_PORT or LECTERN_CONTENT_DIR.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/conneroisu/lectern/internal/errors"
	"github.com/conneroisu/lectern/internal/locale"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "LECTERN"

// DefaultConfigFile is looked up in the working directory when no config
// file is named explicitly.
const DefaultConfigFile = ".lectern.yml"

type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Content ContentConfig `yaml:"content" mapstructure:"content"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	Host            string        `yaml:"host" mapstructure:"host"`
	Environment     string        `yaml:"environment" mapstructure:"environment"`
	AllowedOrigins  []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	DefaultLocale   string        `yaml:"default_locale" mapstructure:"default_locale"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// ContentConfig selects the content catalog. An empty Dir serves the
// catalog compiled into the binary.
type ContentConfig struct {
	Dir      string        `yaml:"dir" mapstructure:"dir"`
	Strict   bool          `yaml:"strict" mapstructure:"strict"`
	Watch    bool          `yaml:"watch" mapstructure:"watch"`
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// Defaults
const (
	DefaultPort            = 8080
	DefaultHost            = "localhost"
	DefaultEnvironment     = "development"
	DefaultRouteLocale     = "es"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultDebounce        = 300 * time.Millisecond
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
	DefaultMetricsPath     = "/metrics"
)

// IsDevelopment reports whether the server runs in development mode.
func (c *ServerConfig) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development"
}

// Address returns host:port.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RouteLocale returns the parsed default locale of unprefixed routes.
func (c *ServerConfig) RouteLocale() locale.Locale {
	l, err := locale.Parse(c.DefaultLocale)
	if err != nil {
		return locale.Canonical
	}
	return l
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v, applies defaults and validates.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.WrapConfig(err, "failed to decode configuration")
	}

	// Handle allowed origins set via viper (workaround for viper slice handling)
	if v.IsSet("server.allowed_origins") && len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}

	applyDefaults(v, &config)

	if err := validateConfig(&config); err != nil {
		return nil, errors.WrapConfig(err, "invalid configuration")
	}

	return &config, nil
}

func applyDefaults(v *viper.Viper, config *Config) {
	if !v.IsSet("server.port") {
		config.Server.Port = DefaultPort
	}
	if config.Server.Host == "" {
		config.Server.Host = DefaultHost
	}
	if config.Server.Environment == "" {
		config.Server.Environment = DefaultEnvironment
	}
	if config.Server.DefaultLocale == "" {
		config.Server.DefaultLocale = DefaultRouteLocale
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = []string{
			fmt.Sprintf("http://localhost:%d", config.Server.Port),
			fmt.Sprintf("http://127.0.0.1:%d", config.Server.Port),
		}
	}

	if !v.IsSet("content.strict") {
		config.Content.Strict = true
	}
	if !v.IsSet("content.watch") {
		config.Content.Watch = config.Server.IsDevelopment() && config.Content.Dir != ""
	}
	if config.Content.Debounce == 0 {
		config.Content.Debounce = DefaultDebounce
	}

	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = DefaultLogFormat
	}

	if !v.IsSet("metrics.enabled") {
		config.Metrics.Enabled = true
	}
	if config.Metrics.Path == "" {
		config.Metrics.Path = DefaultMetricsPath
	}
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := validateContentConfig(&config.Content); err != nil {
		return fmt.Errorf("content config: %w", err)
	}
	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	if err := validateMetricsConfig(&config.Metrics); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}
	return nil
}

func validateServerConfig(config *ServerConfig) error {
	// Allow 0 for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}

	if config.Host != "" {
		if err := validateHostname(config.Host); err != nil {
			return fmt.Errorf("host: %w", err)
		}
	}

	if _, err := locale.Parse(config.DefaultLocale); err != nil {
		return fmt.Errorf("default_locale: %w", err)
	}

	if config.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout must not be negative")
	}
	return nil
}

func validateContentConfig(config *ContentConfig) error {
	if config.Dir != "" {
		if err := validatePath(config.Dir); err != nil {
			return fmt.Errorf("invalid dir '%s': %w", config.Dir, err)
		}
	}
	if config.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative")
	}
	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	if !contains(validLogLevels, strings.ToLower(config.Level)) {
		return fmt.Errorf("unknown level %q", config.Level)
	}
	if !contains(validLogFormats, strings.ToLower(config.Format)) {
		return fmt.Errorf("unknown format %q", config.Format)
	}
	return nil
}

func validateMetricsConfig(config *MetricsConfig) error {
	if !strings.HasPrefix(config.Path, "/") {
		return fmt.Errorf("path must start with '/': %s", config.Path)
	}
	return nil
}

// validatePath validates a file path for security
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	// Reject path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return errors.ErrPathTraversal(path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
