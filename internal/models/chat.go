package models

// ChatRequest is one user turn sent to the support assistant.
type ChatRequest struct {
	PersonaName string `json:"persona_name"`
	UserID      string `json:"user_id"`
	Message     string `json:"message"`
}

// ChatSource cites a knowledge chunk backing the assistant's reply.
type ChatSource struct {
	ID      string `json:"id,omitempty"`
	Preview string `json:"preview,omitempty"`
	Source  string `json:"source,omitempty"`
}

// ChatResponse is the assistant reply plus routing metadata for the turn.
// Sources is never nil after normalization.
type ChatResponse struct {
	Message            string         `json:"message"`
	Confidence         string         `json:"confidence,omitempty"`
	EscalationDeferred bool           `json:"escalation_deferred"`
	AssistAttempts     int            `json:"assist_attempts_with_kb"`
	Sources            []ChatSource   `json:"sources"`
	Router             map[string]any `json:"router,omitempty"`
	TicketID           string         `json:"glpi_ticket_id,omitempty"`
	TicketClosed       map[string]any `json:"ticket_section_closed,omitempty"`
}
