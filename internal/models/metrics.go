package models

// MetricsSnapshot is a point-in-time aggregate of support KPIs computed by
// the backend. It carries no identity and is replaced wholesale on each fetch.
type MetricsSnapshot struct {
	Timestamp            string  `json:"timestamp,omitempty"`
	AutoResolutionRate   float64 `json:"auto_resolution_rate"`
	AutoResolved         int     `json:"auto_resolved"`
	HumanAgent           int     `json:"human_agent"`
	AvgCSAT              float64 `json:"avg_csat"`
	KnowledgeGrowthRatio float64 `json:"knowledge_growth_ratio"`
	AvgResolutionHours   float64 `json:"avg_resolution_hours"`

	// Raw holds the untouched payload for fields the backend adds over time.
	Raw map[string]any `json:"-"`
}
