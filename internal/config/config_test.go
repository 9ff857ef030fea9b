package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/lectern/internal/errors"
	"github.com/conneroisu/lectern/internal/locale"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(v *viper.Viper)
		expectError bool
		check       func(t *testing.T, c *Config)
	}{
		{
			name:  "defaults",
			setup: func(v *viper.Viper) {},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultPort, c.Server.Port)
				assert.Equal(t, DefaultHost, c.Server.Host)
				assert.Equal(t, DefaultEnvironment, c.Server.Environment)
				assert.Equal(t, locale.Spanish, c.Server.RouteLocale())
				assert.Equal(t, []string{"http://localhost:8080", "http://127.0.0.1:8080"}, c.Server.AllowedOrigins)
				assert.Equal(t, DefaultShutdownTimeout, c.Server.ShutdownTimeout)
				assert.Empty(t, c.Content.Dir)
				assert.True(t, c.Content.Strict)
				assert.False(t, c.Content.Watch, "nothing to watch without a directory")
				assert.Equal(t, DefaultDebounce, c.Content.Debounce)
				assert.Equal(t, "info", c.Logging.Level)
				assert.Equal(t, "console", c.Logging.Format)
				assert.True(t, c.Metrics.Enabled)
				assert.Equal(t, "/metrics", c.Metrics.Path)
			},
		},
		{
			name: "explicit values",
			setup: func(v *viper.Viper) {
				v.Set("server.port", 9090)
				v.Set("server.host", "0.0.0.0")
				v.Set("server.environment", "production")
				v.Set("server.allowed_origins", []string{"https://example.com"})
				v.Set("server.default_locale", "en")
				v.Set("content.dir", "./content")
				v.Set("content.strict", false)
				v.Set("content.debounce", "1s")
				v.Set("logging.level", "debug")
				v.Set("logging.format", "json")
				v.Set("metrics.enabled", false)
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 9090, c.Server.Port)
				assert.Equal(t, "0.0.0.0:9090", c.Server.Address())
				assert.False(t, c.Server.IsDevelopment())
				assert.Equal(t, []string{"https://example.com"}, c.Server.AllowedOrigins)
				assert.Equal(t, locale.English, c.Server.RouteLocale())
				assert.Equal(t, "./content", c.Content.Dir)
				assert.False(t, c.Content.Strict)
				assert.False(t, c.Content.Watch, "no watching outside development")
				assert.Equal(t, time.Second, c.Content.Debounce)
				assert.Equal(t, "debug", c.Logging.Level)
				assert.False(t, c.Metrics.Enabled)
			},
		},
		{
			name: "watch defaults on for a directory in development",
			setup: func(v *viper.Viper) {
				v.Set("content.dir", "content")
			},
			check: func(t *testing.T, c *Config) {
				assert.True(t, c.Content.Watch)
			},
		},
		{
			name: "port zero is allowed",
			setup: func(v *viper.Viper) {
				v.Set("server.port", 0)
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 0, c.Server.Port)
			},
		},
		{
			name:        "invalid port type",
			setup:       func(v *viper.Viper) { v.Set("server.port", "invalid_port") },
			expectError: true,
		},
		{
			name:        "port out of range",
			setup:       func(v *viper.Viper) { v.Set("server.port", 70000) },
			expectError: true,
		},
		{
			name:        "dangerous host",
			setup:       func(v *viper.Viper) { v.Set("server.host", "localhost; rm -rf /") },
			expectError: true,
		},
		{
			name:        "unsupported default locale",
			setup:       func(v *viper.Viper) { v.Set("server.default_locale", "fr") },
			expectError: true,
		},
		{
			name:        "content dir traversal",
			setup:       func(v *viper.Viper) { v.Set("content.dir", "../../etc") },
			expectError: true,
		},
		{
			name:        "unknown log level",
			setup:       func(v *viper.Viper) { v.Set("logging.level", "verbose") },
			expectError: true,
		},
		{
			name:        "unknown log format",
			setup:       func(v *viper.Viper) { v.Set("logging.format", "xml") },
			expectError: true,
		},
		{
			name:        "relative metrics path",
			setup:       func(v *viper.Viper) { v.Set("metrics.path", "metrics") },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			tt.setup(v)

			config, err := LoadFrom(v)
			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, config)
				typ, ok := errors.TypeOf(err)
				require.True(t, ok)
				assert.Equal(t, errors.ErrorTypeConfig, typ)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, config)
			tt.check(t, config)
		})
	}
}

func TestLoadGlobal(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("server.port", 3000)
	config, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, config.Server.Port)
}

func TestLoadWithEnvironment(t *testing.T) {
	t.Setenv("LECTERN_SERVER_PORT", "9999")
	t.Setenv("LECTERN_CONTENT_DIR", "catalog")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	require.NoError(t, v.BindEnv("server.port"))
	require.NoError(t, v.BindEnv("content.dir"))

	config, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, 9999, config.Server.Port)
	assert.Equal(t, "catalog", config.Content.Dir)
}

func TestValidateConfigWithDetails(t *testing.T) {
	tests := []struct {
		name         string
		config       Config
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name: "valid",
			config: Config{
				Server:  ServerConfig{Port: 8080, Host: "localhost", Environment: "development", DefaultLocale: "es"},
				Logging: LoggingConfig{Level: "info", Format: "console"},
			},
		},
		{
			name: "errors and warnings",
			config: Config{
				Server: ServerConfig{
					Port:           80,
					Host:           "bad host!",
					Environment:    "staging",
					DefaultLocale:  "de",
					AllowedOrigins: []string{"*"},
				},
				Content: ContentConfig{Dir: "no/such/dir", Watch: true, Debounce: time.Minute},
				Logging: LoggingConfig{Level: "loud", Format: "xml"},
			},
			wantErrors: []string{"server.host", "server.default_locale", "logging.level", "logging.format"},
			wantWarnings: []string{
				"server.port", "server.environment", "server.allowed_origins", "content.dir",
				"content.debounce",
			},
		},
		{
			name: "watch without directory",
			config: Config{
				Server:  ServerConfig{Port: 8080, DefaultLocale: "en"},
				Content: ContentConfig{Watch: true},
				Logging: LoggingConfig{Level: "debug", Format: "json"},
			},
			wantWarnings: []string{"content.watch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateConfigWithDetails(&tt.config)

			assert.Equal(t, tt.wantErrors == nil, result.Valid)
			assert.Equal(t, tt.wantErrors, fields(result.Errors))
			assert.Equal(t, tt.wantWarnings, fields(result.Warnings))

			if result.HasErrors() || result.HasWarnings() {
				assert.NotEmpty(t, result.String())
			}
		})
	}
}

func fields(issues []ValidationError) []string {
	var out []string
	for _, issue := range issues {
		out = append(out, issue.Field)
	}
	return out
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"content", false},
		{"./content/catalog", false},
		{"", true},
		{"../content", true},
		{"content/../../x", true},
		{"content;ls", true},
		{"$(whoami)", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := validatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHostname(t *testing.T) {
	for _, host := range []string{"localhost", "127.0.0.1", "::1", "0.0.0.0", "example.com"} {
		assert.NoError(t, validateHostname(host), host)
	}
	for _, host := range []string{"a b", "host;", "-bad", "x`y`"} {
		assert.Error(t, validateHostname(host), host)
	}
}
