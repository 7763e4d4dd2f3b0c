package upstream

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/openbridge-ai/openbridge/internal/config"
	"github.com/openbridge-ai/openbridge/pkg/api"
)

// Result carries an upstream response back to the caller. The body is
// fully buffered and relayed byte-for-byte; the gateway never re-parses
// it, so provider-specific response shapes (error envelopes included)
// pass through unchanged.
type Result struct {
	StatusCode int
	Body       []byte
}

// Forwarder relays a completion request to a resolved provider.
type Forwarder struct {
	client *http.Client
	logger *zap.Logger
}

func NewForwarder(logger *zap.Logger) *Forwarder {
	return &Forwarder{
		client: &http.Client{},
		logger: logger,
	}
}

// ChatCompletions POSTs body to {base_url}/chat/completions and returns
// the upstream status and buffered body. A transport failure is the only
// error case; upstream HTTP errors are not errors here, they are relayed.
func (fw *Forwarder) ChatCompletions(ctx context.Context, p config.Provider, body []byte) (*Result, error) {
	url := strings.TrimRight(p.BaseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, api.ForwardError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := fw.client.Do(req)
	if err != nil {
		fw.logger.Error("Error forwarding request",
			zap.String("provider", p.BaseURL), zap.Error(err))
		return nil, api.ForwardError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		fw.logger.Error("Error reading upstream response",
			zap.String("provider", p.BaseURL), zap.Error(err))
		return nil, api.ForwardError(err)
	}

	return &Result{StatusCode: resp.StatusCode, Body: respBody}, nil
}
