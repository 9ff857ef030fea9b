package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/lectern/internal/config"
	"github.com/conneroisu/lectern/internal/logging"
	"github.com/conneroisu/lectern/internal/registry"
	"github.com/conneroisu/lectern/internal/server"
	"github.com/conneroisu/lectern/internal/store"
	"github.com/conneroisu/lectern/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the HTTP server",
	Long: `Start the HTTP server: the JSON API under /api/{locale}/, the HTML
previews under /{locale}/developer-section/, /health and /metrics.

With --watch (the default in development when --content-dir is set) the
catalog directory is watched and reloaded on change; open previews are
told over /ws and refresh themselves. A reload that fails keeps serving
the previous content.

Examples:
  lectern serve                                # Serve the embedded catalog
  lectern serve --content-dir ./content --watch
  lectern serve -p 3000 --host 0.0.0.0`,
	RunE: runServe,
}

var serveFlags *StandardFlags

func init() {
	rootCmd.AddCommand(serveCmd)

	serveFlags = AddStandardFlags(serveCmd, "server")
	serveCmd.Flags().Bool("watch", false, "Reload the catalog when files in --content-dir change")
	serveCmd.Flags().Bool("strict", true, "Refuse to start when the catalog fails validation")

	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("content.watch", serveCmd.Flags().Lookup("watch"))
	_ = viper.BindPFlag("content.strict", serveCmd.Flags().Lookup("strict"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, warning := range config.ValidateConfigWithDetails(cfg).Warnings {
		logger.Warn(ctx, nil, warning.Message, "field", warning.Field, "value", warning.Value)
	}

	s, err := loadStore(cfg)
	if err != nil {
		logger.Error(ctx, err, "Failed to load content")
		return err
	}
	reg := registry.New(s)

	stats := s.Stats()
	logger.Info(ctx, "Content loaded",
		"source", s.Source(),
		"documents", stats.Documents,
		"kotlin_lessons", stats.KotlinLessons,
		"web_lessons", stats.WebLessons,
		"overrides", stats.Overrides,
	)

	if cfg.Content.Watch {
		fw, err := startWatcher(ctx, cfg, reg, logger)
		if err != nil {
			return err
		}
		if fw == nil {
			cfg.Content.Watch = false
		} else {
			defer fw.Stop()
		}
	}

	srv := server.New(cfg, reg, logger)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving lectern at http://%s\n", cfg.Server.Address())

	return srv.Start(ctx)
}

// startWatcher reloads reg whenever catalog files under the content
// directory change. It returns nil when there is no directory to watch.
func startWatcher(ctx context.Context, cfg *config.Config, reg *registry.Registry, logger logging.Logger) (*watcher.FileWatcher, error) {
	if cfg.Content.Dir == "" {
		logger.Warn(ctx, nil, "Watching requested without a content directory; the embedded catalog never changes")
		return nil, nil
	}

	fw, err := watcher.NewFileWatcher(cfg.Content.Debounce, logger)
	if err != nil {
		return nil, err
	}
	fw.AddFilter(watcher.NoHiddenFilter)
	fw.AddFilter(watcher.CatalogFilter)
	fw.AddHandler(watcher.ReloadHandler(reg, func() (*store.Store, error) {
		return loadStore(cfg)
	}, logger))

	if err := fw.AddRecursive(cfg.Content.Dir); err != nil {
		fw.Stop()
		return nil, err
	}
	if err := fw.Start(ctx); err != nil {
		fw.Stop()
		return nil, err
	}

	logger.Info(ctx, "Watching content directory", "dir", cfg.Content.Dir, "debounce", cfg.Content.Debounce.String())
	return fw, nil
}
