package model

import (
	"time"
)

// RequestLog is one row per completion forwarding attempt. ResolveMS is
// tracked separately from total latency because every request pays a full
// provider fan-out during model resolution before forwarding begins.
type RequestLog struct {
	ID          string    `db:"id" json:"id"`
	Model       string    `db:"model" json:"model"`
	ProviderURL string    `db:"provider_base_url" json:"provider_base_url"`
	StatusCode  int       `db:"status_code" json:"status_code"`
	LatencyMS   int64     `db:"latency_ms" json:"latency_ms"`
	ResolveMS   int64     `db:"resolve_ms" json:"resolve_ms"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
