package models

// ServiceHealth is the status of one backend dependency. The backend attaches
// arbitrary extra fields per service; those land in Details untouched.
type ServiceHealth struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthReport maps service name to health. Never nil after normalization.
type HealthReport map[string]ServiceHealth
