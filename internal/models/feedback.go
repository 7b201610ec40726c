package models

// FeedbackRequest records a CSAT rating against a ticket or persona.
// Optional strings that are blank after trimming are omitted from the wire.
type FeedbackRequest struct {
	Rating   float64 `json:"rating"`
	Source   string  `json:"source,omitempty"`
	Comment  string  `json:"comment,omitempty"`
	TicketID string  `json:"ticket_id,omitempty"`
	Persona  string  `json:"persona,omitempty"`
}

// FeedbackResponse acknowledges a recorded feedback event.
type FeedbackResponse struct {
	FeedbackID string `json:"feedback_id"`
}
