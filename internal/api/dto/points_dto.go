package dto

import "time"

// PointEventSummary describes one ledger entry.
type PointEventSummary struct {
	Kind      string    `json:"kind"`
	Points    int       `json:"points"`
	SourceID  *int64    `json:"source_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PointsResponse bundles the ledger page with the running total.
type PointsResponse struct {
	Total  int                 `json:"total"`
	Events []PointEventSummary `json:"events"`
}
