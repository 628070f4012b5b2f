// Package queue defines the asset lifecycle events exchanged over the
// message broker, the publisher that emits them and the background
// consumer that records them.
package queue

// AssetCreatedEvent is published when an asset is persisted. It carries
// enough context for downstream consumers to log or alert without querying
// the primary database.
type AssetCreatedEvent struct {
	AssetID     int64   `json:"asset_id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Healthscore float64 `json:"healthscore"`
	Unit        int64   `json:"unit"`
	Company     int64   `json:"company"`
	User        int64   `json:"user"`
	CreatedAt   string  `json:"created_at"`
}

// AssetStatusChangedEvent is published when an update moves an asset to a
// different status, e.g. inOperation -> inAlert.
type AssetStatusChangedEvent struct {
	AssetID     int64   `json:"asset_id"`
	Name        string  `json:"name"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Healthscore float64 `json:"healthscore"`
	Company     int64   `json:"company"`
	ChangedAt   string  `json:"changed_at"`
}
