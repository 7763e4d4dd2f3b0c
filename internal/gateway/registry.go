package gateway

import (
	"context"

	"github.com/openbridge-ai/openbridge/internal/config"
	"github.com/openbridge-ai/openbridge/internal/upstream"
)

// ModelMapping associates a model identifier with the single provider
// that serves it. It is built fresh per resolution pass and discarded
// with the request; nothing is cached between requests.
type ModelMapping map[string]config.Provider

// resolve walks providers strictly in configured order and applies a
// first-writer-wins rule: once a model id is mapped, later providers
// offering the same id are ignored. Provider list position is therefore
// descending priority.
//
// A provider whose fetch fails contributes an empty list (handled inside
// the fetcher), so a single bad provider never fails resolution.
func resolve(ctx context.Context, fetcher *upstream.Fetcher, providers []config.Provider) ModelMapping {
	mapping := make(ModelMapping)

	for _, p := range providers {
		for _, id := range fetcher.ModelIDs(ctx, p) {
			if _, seen := mapping[id]; seen {
				continue
			}
			mapping[id] = p
		}
	}

	return mapping
}
