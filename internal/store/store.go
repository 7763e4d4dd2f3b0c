package store

import (
	"context"

	"github.com/openbridge-ai/openbridge/internal/store/model"
)

type contextKey string

// ContextKeyRequestID carries the per-request id assigned by the HTTP
// layer down to the gateway and the request log.
const ContextKeyRequestID contextKey = "request_id"

// Repository is the contract for the data layer.
type Repository interface {
	Requests() RequestRepository
	Close() error
}

type RequestRepository interface {
	// Log stores a completed forwarding attempt.
	Log(ctx context.Context, log *model.RequestLog) error
	// GetRecent returns the last N logs, newest first.
	GetRecent(ctx context.Context, limit int) ([]model.RequestLog, error)
}
