package config

import (
	"fmt"
	"net"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/conneroisu/lectern/internal/locale"
)

var (
	validEnvironments = []string{"development", "production", "testing"}
	validLogLevels    = []string{"debug", "info", "warn", "error"}
	validLogFormats   = []string{"json", "text", "console"}

	hostnameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("Validation errors:\n")
		writeIssues(&builder, vr.Errors)
		builder.WriteString("\n")
	}
	if len(vr.Warnings) > 0 {
		builder.WriteString("Validation warnings:\n")
		writeIssues(&builder, vr.Warnings)
	}

	return builder.String()
}

func writeIssues(builder *strings.Builder, issues []ValidationError) {
	for _, issue := range issues {
		builder.WriteString(fmt.Sprintf("  • %s: %s\n", issue.Field, issue.Message))
		for _, suggestion := range issue.Suggestions {
			builder.WriteString(fmt.Sprintf("    - %s\n", suggestion))
		}
	}
}

// ValidateConfigWithDetails performs comprehensive validation with detailed
// feedback. Unlike Load it also reports warnings.
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	validateServerConfigDetails(&config.Server, result)
	validateContentConfigDetails(&config.Content, result)
	validateLoggingConfigDetails(&config.Logging, result)

	result.Valid = !result.HasErrors()
	return result
}

func validateServerConfigDetails(config *ServerConfig, result *ValidationResult) {
	if config.Port < 0 || config.Port > 65535 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "server.port",
			Value:   config.Port,
			Message: fmt.Sprintf("port %d is not in valid range 0-65535", config.Port),
			Suggestions: []string{
				"Use a port between 1024-65535 for non-privileged access",
				"Port 0 allows system to assign an available port",
			},
		})
	} else if config.Port > 0 && config.Port < 1024 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "server.port",
			Value:   config.Port,
			Message: "port below 1024 requires elevated privileges",
			Suggestions: []string{
				"Consider using a port above 1024 for development",
			},
		})
	}

	if config.Host != "" {
		if err := validateHostname(config.Host); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "server.host",
				Value:   config.Host,
				Message: err.Error(),
				Suggestions: []string{
					"Use 'localhost' for local development",
					"Use '0.0.0.0' to bind to all interfaces",
				},
			})
		}
	}

	if config.Environment != "" && !contains(validEnvironments, config.Environment) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "server.environment",
			Value:   config.Environment,
			Message: "unknown environment type",
			Suggestions: []string{
				"Use one of: " + strings.Join(validEnvironments, ", "),
			},
		})
	}

	if _, err := locale.Parse(config.DefaultLocale); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "server.default_locale",
			Value:   config.DefaultLocale,
			Message: err.Error(),
			Suggestions: []string{
				"Supported locales: " + supportedLocales(),
			},
		})
	}

	for _, origin := range config.AllowedOrigins {
		if origin == "*" && !config.IsDevelopment() {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "server.allowed_origins",
				Value:   origin,
				Message: "wildcard origin outside development",
				Suggestions: []string{
					"List the site origins explicitly in production",
				},
			})
		}
	}
}

func validateContentConfigDetails(config *ContentConfig, result *ValidationResult) {
	if config.Dir != "" {
		if err := validatePath(config.Dir); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "content.dir",
				Value:   config.Dir,
				Message: err.Error(),
				Suggestions: []string{
					"Use a path inside the project directory",
					"Leave empty to serve the built-in catalog",
				},
			})
		} else if !pathExists(config.Dir) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "content.dir",
				Value:   config.Dir,
				Message: "content directory does not exist",
				Suggestions: []string{
					"Create the directory or fix the path",
				},
			})
		}
	}

	if config.Watch && config.Dir == "" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "content.watch",
			Value:   config.Watch,
			Message: "watching has no effect on the built-in catalog",
			Suggestions: []string{
				"Set content.dir to watch a catalog on disk",
			},
		})
	}

	if config.Debounce > 5*time.Second {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "content.debounce",
			Value:   config.Debounce,
			Message: "long debounce delays reloads",
		})
	}
}

func validateLoggingConfigDetails(config *LoggingConfig, result *ValidationResult) {
	if !contains(validLogLevels, strings.ToLower(config.Level)) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "logging.level",
			Value:   config.Level,
			Message: "unknown log level",
			Suggestions: []string{
				"Use one of: " + strings.Join(validLogLevels, ", "),
			},
		})
	}
	if !contains(validLogFormats, strings.ToLower(config.Format)) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "logging.format",
			Value:   config.Format,
			Message: "unknown log format",
			Suggestions: []string{
				"Use one of: " + strings.Join(validLogFormats, ", "),
			},
		})
	}
}

// Helper validation functions

func validateHostname(host string) error {
	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
	for _, char := range dangerousChars {
		if strings.Contains(host, char) {
			return fmt.Errorf("contains dangerous character: %s", char)
		}
	}

	if net.ParseIP(host) != nil {
		return nil
	}
	if host == "localhost" {
		return nil
	}
	if !hostnameRegex.MatchString(host) {
		return fmt.Errorf("invalid hostname format")
	}
	return nil
}

func supportedLocales() string {
	codes := make([]string, len(locale.Supported))
	for i, l := range locale.Supported {
		codes[i] = l.String()
	}
	return strings.Join(codes, ", ")
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
