package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openbridge-ai/openbridge/internal/analytics"
	"github.com/openbridge-ai/openbridge/internal/config"
	"github.com/openbridge-ai/openbridge/internal/store"
	"github.com/openbridge-ai/openbridge/internal/store/model"
	"github.com/openbridge-ai/openbridge/internal/upstream"
	"github.com/openbridge-ai/openbridge/pkg/api"
)

// Service is the routing core: it resolves which provider serves a model
// and relays completion requests there.
type Service interface {
	// ResolveMapping builds a fresh model→provider mapping by querying
	// every configured provider, in order.
	ResolveMapping(ctx context.Context) ModelMapping
	// ListModels returns the deduplicated raw model records across all
	// providers in first-seen order.
	ListModels(ctx context.Context) ([]api.ModelRecord, error)
	// Forward relays a completion request body to the provider resolved
	// from its "model" field and returns the buffered upstream response.
	Forward(ctx context.Context, body []byte) (*upstream.Result, error)
}

type service struct {
	logger    *zap.Logger
	providers []config.Provider
	fetcher   *upstream.Fetcher
	forwarder *upstream.Forwarder
	ingestor  analytics.Ingestor
}

// NewService wires the routing core. ingestor may be nil, in which case
// no request logs are recorded.
func NewService(logger *zap.Logger, providers []config.Provider, ingestor analytics.Ingestor) Service {
	return &service{
		logger:    logger,
		providers: providers,
		fetcher:   upstream.NewFetcher(logger),
		forwarder: upstream.NewForwarder(logger),
		ingestor:  ingestor,
	}
}

func (s *service) ResolveMapping(ctx context.Context) ModelMapping {
	return resolve(ctx, s.fetcher, s.providers)
}

func (s *service) ListModels(ctx context.Context) ([]api.ModelRecord, error) {
	seen := make(map[string]struct{})
	var records []api.ModelRecord

	for _, p := range s.providers {
		for _, rec := range s.fetcher.RawModels(ctx, p) {
			id, ok := api.RecordID(rec)
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			records = append(records, rec)
		}
	}

	return records, nil
}

func (s *service) Forward(ctx context.Context, body []byte) (*upstream.Result, error) {
	var probe struct {
		Model any `json:"model"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, api.MissingModelError()
	}
	modelID, ok := probe.Model.(string)
	if !ok {
		return nil, api.MissingModelError()
	}

	// Resolution is sequential across all providers and repeated on every
	// request: routing is always fresh, at the cost of the full fan-out
	// latency before the forward even starts.
	resolveStart := time.Now()
	mapping := s.ResolveMapping(ctx)
	resolveLatency := time.Since(resolveStart)

	provider, ok := mapping[modelID]
	if !ok {
		return nil, api.ModelNotFoundError(modelID)
	}

	forwardStart := time.Now()
	result, err := s.forwarder.ChatCompletions(ctx, provider, body)
	status := 0
	if result != nil {
		status = result.StatusCode
	}
	s.record(ctx, modelID, provider, status, time.Since(forwardStart)+resolveLatency, resolveLatency)

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) record(ctx context.Context, modelID string, p config.Provider, status int, total, resolve time.Duration) {
	if s.ingestor == nil {
		return
	}

	id, _ := ctx.Value(store.ContextKeyRequestID).(string)
	if id == "" {
		id = uuid.NewString()
	}

	s.ingestor.Log(&model.RequestLog{
		ID:          id,
		Model:       modelID,
		ProviderURL: p.BaseURL,
		StatusCode:  status,
		LatencyMS:   total.Milliseconds(),
		ResolveMS:   resolve.Milliseconds(),
		CreatedAt:   time.Now(),
	})
}
