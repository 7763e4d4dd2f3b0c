package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/openbridge-ai/openbridge/internal/store"
	"github.com/openbridge-ai/openbridge/internal/store/model"
)

// memRepo is an in-memory store.Repository for tests.
type memRepo struct {
	ch chan *model.RequestLog
}

func (r *memRepo) Requests() store.RequestRepository { return r }
func (r *memRepo) Close() error                      { return nil }

func (r *memRepo) Log(ctx context.Context, log *model.RequestLog) error {
	r.ch <- log
	return nil
}

func (r *memRepo) GetRecent(ctx context.Context, limit int) ([]model.RequestLog, error) {
	return nil, nil
}

func TestIngestor_FlushesOnStop(t *testing.T) {
	repo := &memRepo{ch: make(chan *model.RequestLog, 10)}
	ing := NewIngestor(zap.NewNop(), repo)
	ing.Start(context.Background())

	ing.Log(&model.RequestLog{ID: "r1", Model: "m1", CreatedAt: time.Now()})
	ing.Log(&model.RequestLog{ID: "r2", Model: "m1", CreatedAt: time.Now()})
	ing.Stop()

	var got []string
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case entry := <-repo.ch:
			got = append(got, entry.ID)
		case <-timeout:
			t.Fatalf("timed out waiting for flush, got %v", got)
		}
	}
	assert.ElementsMatch(t, []string{"r1", "r2"}, got)
}
