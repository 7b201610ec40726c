package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opslens/console/internal/client"
	"github.com/opslens/console/internal/models"
	"github.com/opslens/console/internal/utils"
)

var (
	queueStatus   string
	queueLimit    int
	queueReviewer string
)

func newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Review the knowledge draft queue",
	}
	cmd.AddCommand(newQueueListCmd(), newQueueApproveCmd())
	return cmd
}

func newQueueListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending knowledge-article drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := models.QueueQuery{Status: queueStatus}
			if cmd.Flags().Changed("limit") {
				query.Limit = &queueLimit
			}
			return runCall("Fetching knowledge queue...", func(ctx context.Context, api *client.Client) error {
				resp, err := api.FetchKnowledgeQueue(ctx, query)
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(resp)
				}
				printQueue(resp)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&queueStatus, "status", "s", "", "Filter by status (e.g. awaiting_approval)")
	cmd.Flags().IntVarP(&queueLimit, "limit", "l", 50, "Maximum items to fetch (clamped to 200)")
	return cmd
}

func printQueue(resp *models.QueueResponse) {
	if resp.AutoApprove {
		color.Yellow("auto-approve is enabled on the backend")
	}
	if len(resp.Items) == 0 {
		fmt.Println("Queue is empty.")
		return
	}
	now := time.Now()
	for _, item := range resp.Items {
		fmt.Printf("  %-26s %-20s %-10s %s\n",
			item.ID, item.Persona, item.Status, utils.Age(item.UpdatedAt, now))
	}
	fmt.Printf("%d item(s)\n", len(resp.Items))
}

func newQueueApproveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve ITEM_ID",
		Short: "Approve a pending knowledge draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID := args[0]
			return runCall("Approving queue item...", func(ctx context.Context, api *client.Client) error {
				resp, err := api.ApproveKnowledgeQueueItem(ctx, itemID, queueReviewer)
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(resp)
				}
				fmt.Printf("item %s -> %s", itemID, resp.Status)
				if resp.ArticleID != "" {
					fmt.Printf(" (article %s)", resp.ArticleID)
				}
				fmt.Println()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&queueReviewer, "reviewer", "", "Reviewer name to record with the approval")
	return cmd
}
