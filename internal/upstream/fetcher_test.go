package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openbridge-ai/openbridge/internal/config"
	"github.com/openbridge-ai/openbridge/pkg/api"
)

func TestModelIDs_StaticBypassesNetwork(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	f := NewFetcher(zap.NewNop())
	p := config.Provider{BaseURL: srv.URL, Models: []string{"x", "y"}}

	ids := f.ModelIDs(context.Background(), p)
	assert.Equal(t, []string{"x", "y"}, ids)
	assert.Zero(t, calls.Load(), "static models must not trigger a network call")
}

func TestModelIDs_LiveFetch(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"m1"},{"id":"m2","owned_by":"acme"},{"created":123},{"id":42}]}`))
	}))
	defer srv.Close()

	f := NewFetcher(zap.NewNop())
	// Trailing slash on base_url is stripped before concatenation.
	p := config.Provider{BaseURL: srv.URL + "/", APIKey: "sk-up"}

	ids := f.ModelIDs(context.Background(), p)
	assert.Equal(t, []string{"m1", "m2"}, ids, "records without a string id are skipped")
	assert.Equal(t, "Bearer sk-up", gotAuth)
}

func TestModelIDs_NoAuthHeaderWithoutKey(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	f := NewFetcher(zap.NewNop())
	f.ModelIDs(context.Background(), config.Provider{BaseURL: srv.URL})
	assert.False(t, sawAuth)
}

func TestModelIDs_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"upstream 500", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"invalid json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}},
		{"missing data array", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"object":"list"}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			f := NewFetcher(zap.NewNop())
			ids := f.ModelIDs(context.Background(), config.Provider{BaseURL: srv.URL})
			assert.Empty(t, ids)
		})
	}
}

func TestModelIDs_ConnectionFailureDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	f := NewFetcher(zap.NewNop())
	ids := f.ModelIDs(context.Background(), config.Provider{BaseURL: srv.URL})
	assert.Empty(t, ids)
}

func TestRawModels_StaticSynthesizesRecords(t *testing.T) {
	f := NewFetcher(zap.NewNop())
	p := config.Provider{BaseURL: "http://unused.invalid", Models: []string{"x"}}

	records := f.RawModels(context.Background(), p)
	require.Len(t, records, 1)
	assert.JSONEq(t, `{"id":"x","object":"model","created":null,"owned_by":null}`, string(records[0]))
}

func TestRawModels_LivePassesThroughVerbatim(t *testing.T) {
	rec := `{"id":"m1","owned_by":"acme","context_length":32768,"custom_field":{"nested":true}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[` + rec + `]}`))
	}))
	defer srv.Close()

	f := NewFetcher(zap.NewNop())
	records := f.RawModels(context.Background(), config.Provider{BaseURL: srv.URL})
	require.Len(t, records, 1)

	id, ok := api.RecordID(records[0])
	require.True(t, ok)
	assert.Equal(t, "m1", id)
	assert.JSONEq(t, rec, string(records[0]), "provider-specific fields must survive")
}
