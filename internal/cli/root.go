package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/opslens/console/internal/client"
	"github.com/opslens/console/internal/config"
	"github.com/opslens/console/internal/utils"
)

var (
	configPath string
	baseURL    string
	outputJSON bool
)

// NewRootCmd assembles the consolectl command tree.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "consolectl",
		Short: "Terminal console for the support operations backend",
		Long: `consolectl talks to the support operations backend: KPI snapshots,
ticket-theme trends, ticket routing, the knowledge review queue, the chat
assistant, and per-service health.`,
		SilenceUsage: true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print raw JSON instead of tables")

	rootCmd.AddCommand(
		newMetricsCmd(),
		newTrendsCmd(),
		newPersonasCmd(),
		newHealthCmd(),
		newRouteCmd(),
		newFeedbackCmd(),
		newQueueCmd(),
		newChatCmd(),
		newWatchCmd(),
		newVersionCmd(version),
	)

	return rootCmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("consolectl version %s\n", version)
		},
	}
}

// setup loads configuration and builds the backend client plus logger.
func setup() (*config.Config, *client.Client, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
	api := client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	return cfg, api, logger, nil
}

// runCall executes one backend call with a spinner and signal handling.
// A Ctrl-C mid-flight cancels the request and exits without an error: a
// cancelled call must never render stale output or a failure message.
func runCall(suffix string, fn func(ctx context.Context, api *client.Client) error) error {
	_, api, _, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " " + suffix
	s.Start()
	err = fn(ctx, api)
	s.Stop()

	if err != nil && client.IsCanceled(err) {
		return nil
	}
	return err
}

// printJSON renders any value as indented JSON on stdout.
func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
