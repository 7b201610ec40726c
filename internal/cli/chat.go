package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opslens/console/internal/client"
	"github.com/opslens/console/internal/models"
)

var (
	chatPersona string
	chatUserID  string
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat MESSAGE",
		Short: "Send one turn to the support assistant",
		Long: `Chat sends a single user message through the assistant pipeline and
prints the reply together with routing metadata and knowledge sources.

Example:
  consolectl chat --persona ol_acme --user tester-1 "my laptop won't boot"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			return runCall("Waiting for the assistant...", func(ctx context.Context, api *client.Client) error {
				resp, err := api.SendChatMessage(ctx, models.ChatRequest{
					PersonaName: chatPersona,
					UserID:      chatUserID,
					Message:     message,
				})
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(resp)
				}
				printChat(resp)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&chatPersona, "persona", "p", "", "Persona name (required, e.g. ol_acme)")
	cmd.Flags().StringVarP(&chatUserID, "user", "u", "", "User identifier (required)")
	_ = cmd.MarkFlagRequired("persona")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func printChat(resp *models.ChatResponse) {
	fmt.Println(resp.Message)
	if resp.Confidence != "" {
		fmt.Printf("\nconfidence: %s\n", confidenceBadge(resp.Confidence))
	}
	if resp.TicketID != "" {
		color.Yellow("escalated to ticket %s", resp.TicketID)
	}
	if resp.EscalationDeferred {
		fmt.Printf("escalation deferred (assist attempt %d)\n", resp.AssistAttempts)
	}
	for _, source := range resp.Sources {
		preview := source.Preview
		if len(preview) > 80 {
			preview = preview[:80] + "..."
		}
		fmt.Printf("  [%s] %s\n", source.ID, preview)
	}
}

func confidenceBadge(confidence string) string {
	switch strings.ToUpper(confidence) {
	case "HIGH":
		return color.GreenString(confidence)
	case "MEDIUM":
		return color.YellowString(confidence)
	default:
		return color.RedString(confidence)
	}
}
