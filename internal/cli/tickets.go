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
	routePersona  string
	routeTicketID string
)

func newRouteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route DESCRIPTION",
		Short: "Classify and route a ticket description",
		Long: `Route sends a ticket description through the backend's triage router
and prints the decision, classification, and top knowledge matches.

Examples:
  consolectl route "VPN drops every hour on the office wifi"
  consolectl route --persona ol_acme --ticket-id T-1042 "printer offline"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.Join(args, " ")
			return runCall("Routing ticket...", func(ctx context.Context, api *client.Client) error {
				resp, err := api.RouteTicket(ctx, models.RouteRequest{
					Description: description,
					Persona:     routePersona,
					TicketID:    routeTicketID,
				})
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(resp)
				}
				printRoute(resp)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&routePersona, "persona", "p", "", "Persona to route against")
	cmd.Flags().StringVar(&routeTicketID, "ticket-id", "", "Existing ticket identifier")
	return cmd
}

func printRoute(resp *models.RouteResponse) {
	fmt.Printf("decision:       %s\n", decisionBadge(resp.Decision))
	fmt.Printf("top similarity: %.3f\n", resp.TopSimilarity)
	cls := resp.Classification
	fmt.Printf("classification: %s / %s, urgency %s, sentiment %s (confidence %.2f)\n",
		cls.IssueCategory, cls.IssueType, cls.Urgency, cls.Sentiment, cls.Confidence)
	if cls.NeedsSupervisor {
		color.Yellow("needs supervisor review")
	}
	for i, match := range resp.Matches {
		title := match.Title
		if title == "" {
			title = match.ArticleID
		}
		fmt.Printf("  match %d: %.3f  %s\n", i+1, match.Similarity, title)
	}
	if resp.ResolutionProposal != "" {
		fmt.Printf("proposed resolution:\n%s\n", resp.ResolutionProposal)
	}
}

func decisionBadge(decision models.RouteDecision) string {
	switch decision {
	case models.DecisionAutoResolved:
		return color.GreenString(string(decision))
	case models.DecisionAssistive:
		return color.CyanString(string(decision))
	case models.DecisionHumanAgent:
		return color.YellowString(string(decision))
	default:
		return string(decision)
	}
}

var (
	feedbackRating   float64
	feedbackComment  string
	feedbackTicketID string
	feedbackPersona  string
	feedbackSource   string
)

func newFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Submit a CSAT rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Submitting feedback...", func(ctx context.Context, api *client.Client) error {
				resp, err := api.SubmitFeedback(ctx, models.FeedbackRequest{
					Rating:   feedbackRating,
					Comment:  feedbackComment,
					TicketID: feedbackTicketID,
					Persona:  feedbackPersona,
					Source:   feedbackSource,
				})
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(resp)
				}
				fmt.Printf("recorded feedback %s\n", resp.FeedbackID)
				return nil
			})
		},
	}

	cmd.Flags().Float64VarP(&feedbackRating, "rating", "r", 0, "CSAT rating (required)")
	cmd.Flags().StringVar(&feedbackComment, "comment", "", "Free-form comment")
	cmd.Flags().StringVar(&feedbackTicketID, "ticket-id", "", "Related ticket identifier")
	cmd.Flags().StringVarP(&feedbackPersona, "persona", "p", "", "Persona the rating applies to")
	cmd.Flags().StringVar(&feedbackSource, "source", "", "Feedback source (defaults to customer on the backend)")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}
