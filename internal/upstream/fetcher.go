package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/openbridge-ai/openbridge/internal/config"
	"github.com/openbridge-ai/openbridge/pkg/api"
)

// Fetcher retrieves the model list of a single provider, either from its
// static configuration or from a live GET {base_url}/models call.
//
// Every failure mode on the live path degrades to an empty list: callers
// never see the difference between "no models" and "fetch failed". The
// failure itself is logged at Warn so it stays diagnosable.
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewFetcher uses the default http.Client deliberately: discovery
// timeouts are whatever the transport imposes, not a gateway concern.
func NewFetcher(logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{},
		logger: logger,
	}
}

// ModelIDs returns the ordered model identifiers served by p. Elements of
// a live response whose "id" is missing or not a string are skipped.
func (f *Fetcher) ModelIDs(ctx context.Context, p config.Provider) []string {
	if p.Models != nil {
		ids := make([]string, len(p.Models))
		copy(ids, p.Models)
		return ids
	}

	records, ok := f.listEndpoint(ctx, p)
	if !ok {
		return nil
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if id, ok := api.RecordID(rec); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// RawModels returns the ordered full model records served by p. Static
// models are synthesized into minimal records; live records pass through
// byte-for-byte so provider-specific fields survive.
func (f *Fetcher) RawModels(ctx context.Context, p config.Provider) []api.ModelRecord {
	if p.Models != nil {
		records := make([]api.ModelRecord, 0, len(p.Models))
		for _, id := range p.Models {
			records = append(records, api.StaticModelRecord(id))
		}
		return records
	}

	records, _ := f.listEndpoint(ctx, p)
	return records
}

func (f *Fetcher) listEndpoint(ctx context.Context, p config.Provider) ([]api.ModelRecord, bool) {
	url := strings.TrimRight(p.BaseURL, "/") + "/models"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Warn("Failed to build model listing request",
			zap.String("provider", p.BaseURL), zap.Error(err))
		return nil, false
	}
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("Failed to connect to provider",
			zap.String("provider", p.BaseURL), zap.Error(err))
		return nil, false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Warn("Failed to fetch models from provider",
			zap.String("provider", p.BaseURL), zap.Int("status", resp.StatusCode))
		return nil, false
	}

	var payload struct {
		Data []api.ModelRecord `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		f.logger.Warn("Failed to parse models response from provider",
			zap.String("provider", p.BaseURL), zap.Error(err))
		return nil, false
	}
	if payload.Data == nil {
		f.logger.Warn("Models response missing data array",
			zap.String("provider", p.BaseURL))
		return nil, false
	}

	return payload.Data, true
}
