package models

// TrendDirection enumerates cluster movement over the analysis window.
type TrendDirection string

const (
	TrendEmerging  TrendDirection = "emerging"
	TrendGrowing   TrendDirection = "growing"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// TrendCluster is one ticket-theme cluster from the analytics pipeline.
// TopEntities and TicketIDs are never nil after normalization.
type TrendCluster struct {
	ClusterID   int64          `json:"cluster_id"`
	Label       string         `json:"label"`
	Size        int            `json:"size"`
	Trend       TrendDirection `json:"trend"`
	TopEntities []string       `json:"top_entities"`
	TicketIDs   []string       `json:"ticket_ids"`
	LastUpdated string         `json:"last_updated,omitempty"`
}

// TrendReport wraps the cluster list returned by the analytics endpoint.
type TrendReport struct {
	Clusters []TrendCluster `json:"clusters"`
}
