package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/opslens/console/internal/client"
	"github.com/opslens/console/internal/metrics"
	"github.com/opslens/console/internal/utils"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll KPIs and backend health on an interval",
		Long: `Watch refreshes the KPI snapshot and per-service health map on the
configured interval until interrupted. While running it serves a Prometheus
endpoint with client request metrics at the configured metrics address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch()
		},
	}
}

func runWatch() error {
	cfg, api, logger, err := setup()
	if err != nil {
		return err
	}

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsServer *http.Server
	if cfg.Watch.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Watch.MetricsAddress,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", slog.String("address", cfg.Watch.MetricsAddress))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server exited", slog.Any("error", err))
				stop()
			}
		}()
	}

	tracker := utils.NewLatencyTracker(256)
	interval := cfg.Watch.Interval
	if interval <= 0 {
		interval = 15 * time.Second
	}

	logger.Info("watching backend",
		slog.String("base_url", cfg.API.BaseURL),
		slog.Duration("interval", interval))

	refresh(ctx, api, tracker, logger)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			if metricsServer != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = metricsServer.Shutdown(shutdownCtx)
			}
			return nil
		case <-ticker.C:
			refresh(ctx, api, tracker, logger)
		}
	}
}

// refresh performs one polling pass. Cancellation mid-pass renders nothing:
// an aborted request never writes stale output or surfaces as a failure.
func refresh(ctx context.Context, api *client.Client, tracker *utils.LatencyTracker, logger *slog.Logger) {
	started := time.Now()
	snapshot, err := api.FetchMetrics(ctx)
	if err != nil {
		if client.IsCanceled(err) {
			return
		}
		logger.Warn("KPI fetch failed", slog.Any("error", err))
	}
	tracker.Observe(time.Since(started))

	started = time.Now()
	health, err := api.FetchHealth(ctx)
	if err != nil {
		if client.IsCanceled(err) {
			return
		}
		logger.Warn("health fetch failed", slog.Any("error", err))
	}
	tracker.Observe(time.Since(started))

	fmt.Printf("\n--- %s ---\n", time.Now().Format(time.TimeOnly))
	if snapshot != nil {
		printMetrics(snapshot)
	}
	if len(health) > 0 {
		fmt.Println("Services")
		printHealth(health)
	}
	summary := tracker.Summary()
	fmt.Printf("request latency: p50 %s, p95 %s over %d calls\n",
		summary.P50.Round(time.Millisecond), summary.P95.Round(time.Millisecond), summary.Count)
}
