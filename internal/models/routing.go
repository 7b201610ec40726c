package models

// RouteDecision enumerates the router's verdict for a ticket.
type RouteDecision string

const (
	DecisionAutoResolved RouteDecision = "auto_resolved"
	DecisionAssistive    RouteDecision = "assistive"
	DecisionHumanAgent   RouteDecision = "human_agent"
)

// RouteRequest asks the backend to classify and route a ticket description.
// Description is required; the remaining fields are optional.
type RouteRequest struct {
	Description string         `json:"description"`
	Persona     string         `json:"persona,omitempty"`
	TicketID    string         `json:"ticket_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Classification is the multi-dimensional triage label attached by the router.
type Classification struct {
	IssueCategory   string  `json:"issue_category"`
	IssueType       string  `json:"issue_type"`
	Urgency         string  `json:"urgency"`
	ImpactScope     string  `json:"impact_scope"`
	Sentiment       string  `json:"sentiment"`
	RequiresHuman   bool    `json:"requires_human"`
	NeedsSupervisor bool    `json:"needs_supervisor"`
	Confidence      float64 `json:"confidence"`
}

// KnowledgeMatch is one knowledge-base chunk surfaced for a routed ticket.
// Similarity is always a finite number after normalization.
type KnowledgeMatch struct {
	Content        string  `json:"content,omitempty"`
	Similarity     float64 `json:"similarity"`
	MatchReason    string  `json:"match_reason,omitempty"`
	ArticleID      string  `json:"article_id,omitempty"`
	SourceTicketID string  `json:"source_ticket_id,omitempty"`
	Title          string  `json:"title,omitempty"`
}

// RouteResponse is the router's verdict plus supporting knowledge matches.
// Matches is never nil after normalization.
type RouteResponse struct {
	TicketID           string           `json:"ticket_id,omitempty"`
	Persona            string           `json:"persona,omitempty"`
	Decision           RouteDecision    `json:"decision"`
	Classification     Classification   `json:"classification"`
	Matches            []KnowledgeMatch `json:"matches"`
	Assistive          bool             `json:"assistive"`
	TopSimilarity      float64          `json:"top_similarity"`
	ResolutionProposal string           `json:"resolution_proposal,omitempty"`
}
