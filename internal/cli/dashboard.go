package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opslens/console/internal/client"
	"github.com/opslens/console/internal/models"
	"github.com/opslens/console/internal/utils"
)

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show the aggregate KPI snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Fetching KPI snapshot...", func(ctx context.Context, api *client.Client) error {
				snapshot, err := api.FetchMetrics(ctx)
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(snapshot)
				}
				printMetrics(snapshot)
				return nil
			})
		},
	}
}

func printMetrics(m *models.MetricsSnapshot) {
	bold := color.New(color.Bold)
	bold.Println("Support KPIs (30d window)")
	fmt.Printf("  auto-resolution rate   %s\n", formatRate(m.AutoResolutionRate))
	fmt.Printf("  auto resolved          %d\n", m.AutoResolved)
	fmt.Printf("  routed to human        %d\n", m.HumanAgent)
	fmt.Printf("  avg CSAT               %.2f\n", m.AvgCSAT)
	fmt.Printf("  knowledge growth       %.2f\n", m.KnowledgeGrowthRatio)
	if m.AvgResolutionHours > 0 {
		fmt.Printf("  avg resolution hours   %.1f\n", m.AvgResolutionHours)
	}
	if m.Timestamp != "" {
		fmt.Printf("  computed               %s ago\n", utils.Age(m.Timestamp, time.Now()))
	}
}

func formatRate(rate float64) string {
	text := fmt.Sprintf("%.1f%%", rate*100)
	switch {
	case rate >= 0.5:
		return color.GreenString(text)
	case rate >= 0.2:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}

func newTrendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Show ticket-theme trend clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Fetching trend clusters...", func(ctx context.Context, api *client.Client) error {
				report, err := api.FetchAnalyticsTrends(ctx)
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(report)
				}
				printTrends(report)
				return nil
			})
		},
	}
}

func printTrends(report *models.TrendReport) {
	if len(report.Clusters) == 0 {
		fmt.Println("No trend clusters yet.")
		return
	}
	for _, cluster := range report.Clusters {
		fmt.Printf("%s %s (%d tickets)\n",
			trendBadge(cluster.Trend), color.New(color.Bold).Sprint(cluster.Label), cluster.Size)
		if len(cluster.TopEntities) > 0 {
			fmt.Printf("    entities: %v\n", cluster.TopEntities)
		}
		if cluster.LastUpdated != "" {
			fmt.Printf("    updated:  %s ago\n", utils.Age(cluster.LastUpdated, time.Now()))
		}
	}
}

func trendBadge(trend models.TrendDirection) string {
	switch trend {
	case models.TrendEmerging:
		return color.MagentaString("[emerging]")
	case models.TrendGrowing:
		return color.RedString("[growing] ")
	case models.TrendDeclining:
		return color.GreenString("[declining]")
	default:
		return color.YellowString("[stable]  ")
	}
}

func newPersonasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personas",
		Short: "List available support personas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Fetching personas...", func(ctx context.Context, api *client.Client) error {
				personas, err := api.FetchPersonas(ctx)
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(personas)
				}
				for _, persona := range personas {
					fmt.Println(persona)
				}
				return nil
			})
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show per-service backend health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Checking backend health...", func(ctx context.Context, api *client.Client) error {
				report, err := api.FetchHealth(ctx)
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(report)
				}
				printHealth(report)
				return nil
			})
		},
	}
}

func printHealth(report models.HealthReport) {
	names := make([]string, 0, len(report))
	for name := range report {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-14s %s\n", name, statusBadge(report[name].Status))
	}
}

func statusBadge(status string) string {
	switch status {
	case "ok", "up", "healthy":
		return color.GreenString(status)
	case "":
		return color.YellowString("unknown")
	default:
		return color.RedString(status)
	}
}
