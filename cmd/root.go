package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/lectern/internal/config"
	"github.com/conneroisu/lectern/internal/errors"
	"github.com/conneroisu/lectern/internal/loader"
	"github.com/conneroisu/lectern/internal/logging"
	"github.com/conneroisu/lectern/internal/store"
)

var cfgFile string

// configKeys are bound to LECTERN_ environment variables.
var configKeys = []string{
	"server.port",
	"server.host",
	"server.environment",
	"server.allowed_origins",
	"server.default_locale",
	"server.shutdown_timeout",
	"content.dir",
	"content.strict",
	"content.watch",
	"content.debounce",
	"logging.level",
	"logging.format",
	"metrics.enabled",
	"metrics.path",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Serve the localized developer documentation and courses",
	Long: `Lectern serves the developer section content: documentation pages, the
Kotlin course, the React course and blog metadata, in English and Spanish.
Spanish content is an overlay of partial translations on the English
records; anything untranslated falls back to English.

Quick Start:
  lectern serve                          Start the HTTP server
  lectern show doc coroutines-basics     Print a resolved document
  lectern list kotlin --locale es        List the Kotlin course
  lectern validate --content-dir content Check a catalog directory
  lectern config show                    Print the effective configuration
  lectern health                         Probe a running server

Command Aliases (for faster typing):
  serve (s), show (sh), list (l), validate (v)`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .lectern.yml, can also use LECTERN_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("content-dir", "", "directory holding the catalog files (default: embedded catalog)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (json, text, console)")

	_ = viper.BindPFlag("content.dir", rootCmd.PersistentFlags().Lookup("content-dir"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig initializes the configuration system.
//
// Configuration file lookup (highest to lowest):
//  1. --config flag
//  2. LECTERN_CONFIG_FILE environment variable
//  3. .lectern.yml in the current directory
//
// Every key in configKeys can also be set with a LECTERN_ variable, e.g.
// LECTERN_SERVER_PORT=9090 or LECTERN_CONTENT_DIR=./content.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv(config.EnvPrefix + "_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(strings.TrimSuffix(config.DefaultConfigFile, ".yml"))
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range configKeys {
		_ = viper.BindEnv(key)
	}

	// A missing config file is fine; defaults apply.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig loads the configuration and builds the logger it describes.
func loadConfig() (*config.Config, *logging.LecternLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, errors.WrapConfig(err, "invalid log level")
	}
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	return cfg, logger, nil
}

// storeLoader returns the function that builds a snapshot for cfg.
func storeLoader(cfg *config.Config) func() (*store.Store, error) {
	if cfg.Content.Dir == "" {
		return loader.LoadEmbedded
	}
	dir := cfg.Content.Dir
	return func() (*store.Store, error) {
		return loader.LoadDir(dir)
	}
}

// loadStore builds the snapshot for cfg, refusing it when strict validation
// is on and the catalog breaks an authoring invariant.
func loadStore(cfg *config.Config) (*store.Store, error) {
	s, err := storeLoader(cfg)()
	if err != nil {
		return nil, err
	}
	if cfg.Content.Strict {
		if vec := s.Validate(); vec.HasErrors() {
			return nil, vec.ToContentError()
		}
	}
	return s, nil
}
