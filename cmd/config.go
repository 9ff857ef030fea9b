package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/lectern/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect lectern configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration lectern would run with, after:
- Loading the configuration file
- Applying LECTERN_ environment variable overrides
- Processing command-line flags
- Filling in defaults

Examples:
  lectern config show                 # YAML
  lectern config show -f json
  lectern config show -f table`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and report warnings",
	Long: `Check the effective configuration. Errors make the command fail;
warnings (a missing content directory, watching without one, a long
debounce) are printed with suggestions.

Examples:
  lectern config validate
  lectern config validate --strict    # Treat warnings as errors`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var (
	configFormat string
	configStrict bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)

	configValidateCmd.Flags().BoolVar(&configStrict, "strict", false, "Treat warnings as errors")

	configShowCmd.Flags().StringVarP(&configFormat, "format", "f", FormatYAML, "Output format (table, json, yaml)")
	AddFlagValidation(configShowCmd, "format", func(v string) error {
		return ValidateFormat(v, outputFormats)
	})
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	return showConfig(cmd.OutOrStdout(), cfg, configFormat)
}

func showConfig(w io.Writer, cfg *config.Config, format string) error {
	dir := cfg.Content.Dir
	if dir == "" {
		dir = "(embedded)"
	}
	metrics := "disabled"
	if cfg.Metrics.Enabled {
		metrics = cfg.Metrics.Path
	}

	rows := []row{
		{"Address", cfg.Server.Address()},
		{"Environment", cfg.Server.Environment},
		{"Allowed origins", strings.Join(cfg.Server.AllowedOrigins, ", ")},
		{"Default locale", string(cfg.Server.RouteLocale())},
		{"Shutdown timeout", cfg.Server.ShutdownTimeout.String()},
		{"Content dir", dir},
		{"Strict", strconv.FormatBool(cfg.Content.Strict)},
		{"Watch", strconv.FormatBool(cfg.Content.Watch)},
		{"Debounce", cfg.Content.Debounce.String()},
		{"Log level", cfg.Logging.Level},
		{"Log format", cfg.Logging.Format},
		{"Metrics", metrics},
	}
	if err := writeValue(w, format, cfg, rows); err != nil {
		return fmt.Errorf("failed to print configuration: %w", err)
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	return validateConfig(cmd.OutOrStdout(), cfg, configStrict)
}

func validateConfig(w io.Writer, cfg *config.Config, strict bool) error {
	result := config.ValidateConfigWithDetails(cfg)
	if !result.HasErrors() && !result.HasWarnings() {
		_, err := fmt.Fprintln(w, "Configuration is valid")
		return err
	}

	fmt.Fprint(w, result.String())
	switch {
	case result.HasErrors():
		return fmt.Errorf("configuration has %d error(s)", len(result.Errors))
	case strict:
		return fmt.Errorf("configuration has %d warning(s)", len(result.Warnings))
	default:
		return nil
	}
}
