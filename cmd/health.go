package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/conneroisu/lectern/internal/monitoring"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Query the health endpoint of a running lectern server",
	Long: `Request /health from a running server and report the result. The command
fails unless the server reports healthy, which makes it usable as a
container health check or readiness probe.

Examples:
  lectern health
  lectern health --port 9000 -f json`,
	Args: cobra.NoArgs,
	RunE: runHealthCheck,
}

var (
	healthFlags   *StandardFlags
	healthTimeout time.Duration
)

func init() {
	rootCmd.AddCommand(healthCmd)

	healthFlags = AddStandardFlags(healthCmd, "server", "output")
	healthCmd.Flags().DurationVarP(&healthTimeout, "timeout", "t", 3*time.Second, "Timeout for the health request")
}

func runHealthCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
	defer cancel()

	url := fmt.Sprintf("http://%s:%d/health", healthFlags.Host, healthFlags.Port)
	return checkHealth(ctx, cmd.OutOrStdout(), http.DefaultClient, url, healthFlags.Format)
}

// checkHealth fetches url, prints the report and fails when the server is
// unreachable or not healthy.
func checkHealth(ctx context.Context, w io.Writer, client *http.Client, url, format string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	var health monitoring.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("server returned status %d with an unreadable body: %w", resp.StatusCode, err)
	}

	rows := []row{{"Status", string(health.Status)}, {"Uptime", health.Uptime}}
	names := make([]string, 0, len(health.Checks))
	for name := range health.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		check := health.Checks[name]
		rows = append(rows, row{"  " + name, string(check.Status) + "  " + check.Message})
	}
	if err := writeValue(w, format, health, rows); err != nil {
		return err
	}

	if health.Status != monitoring.HealthStatusHealthy {
		return fmt.Errorf("server is %s", health.Status)
	}
	return nil
}
