package models

// QueueQuery filters the knowledge review queue. A nil Limit leaves the
// backend default in place; a supplied value is clamped to [1, 200].
type QueueQuery struct {
	Status string
	Limit  *int
}

// KnowledgeQueueItem is one pending knowledge-article draft awaiting review.
// ID is guaranteed non-empty after normalization: the client falls back to
// ResolutionID, then TicketID, then a generated identifier.
type KnowledgeQueueItem struct {
	ID             string         `json:"id"`
	ResolutionID   string         `json:"resolution_id,omitempty"`
	TicketID       string         `json:"ticket_id,omitempty"`
	Persona        string         `json:"persona,omitempty"`
	Status         string         `json:"status,omitempty"`
	CreatedAt      string         `json:"created_at,omitempty"`
	UpdatedAt      string         `json:"updated_at,omitempty"`
	LeadReviewedAt string         `json:"lead_reviewed_at,omitempty"`
	SMEReviewedAt  string         `json:"sme_reviewed_at,omitempty"`
	ApprovalMode   string         `json:"approval_mode,omitempty"`
	ApprovedBy     string         `json:"approved_by,omitempty"`
	Draft          map[string]any `json:"draft,omitempty"`
	Resolution     map[string]any `json:"resolution,omitempty"`
}

// QueueResponse is the knowledge review queue page. Items is never nil.
type QueueResponse struct {
	Items       []KnowledgeQueueItem `json:"items"`
	AutoApprove bool                 `json:"auto_approve"`
}

// ApproveResponse reports the outcome of approving a queue item. Status
// defaults to "unknown" when the backend omits it.
type ApproveResponse struct {
	Status    string         `json:"status"`
	ArticleID string         `json:"article_id,omitempty"`
	Detail    map[string]any `json:"detail,omitempty"`
}
