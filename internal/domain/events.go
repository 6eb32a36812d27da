package domain

import "time"

// Event types
const (
	EventTypeAssetRegistered  = "asset.registered"
	EventTypeAssetDisposed    = "asset.disposed"
	EventTypeAssetUndisposed  = "asset.undisposed"
	EventTypeDepreciationRun  = "depreciation.run"
	EventTypeDepreciationRoll = "depreciation.rolled_back"
)

// Aggregate types
const (
	AggregateTypeAsset    = "asset"
	AggregateTypeDisposal = "disposal"
)

// OutboxEvent is a journal event queued for the remote bookkeeping
// service. Events are written in the same transaction as the state
// change they describe and published by the journal poster.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// AssetDisposedEvent payload
type AssetDisposedEvent struct {
	AssetID      string `json:"asset_id"`
	DisposedOn   string `json:"disposed_on"`
	SaleProceeds string `json:"sale_proceeds"`
	GainOnSale   string `json:"gain_on_disposal,omitempty"`
	LossOnSale   string `json:"loss_on_disposal,omitempty"`
	CapitalGain  string `json:"capital_gain,omitempty"`
}

// DepreciationRunEvent payload
type DepreciationRunEvent struct {
	UserID    string `json:"user_id"`
	RunTo     string `json:"run_to"`
	Succeeded int    `json:"succeeded"`
	Skipped   int    `json:"skipped"`
}
