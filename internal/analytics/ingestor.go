package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/openbridge-ai/openbridge/internal/store"
	"github.com/openbridge-ai/openbridge/internal/store/model"
)

// Ingestor persists request logs asynchronously so the forwarding hot
// path never blocks on sqlite.
type Ingestor interface {
	Log(log *model.RequestLog)
	Start(ctx context.Context)
	Stop()
}

type ingestor struct {
	logger    *zap.Logger
	repo      store.Repository
	logChan   chan *model.RequestLog
	batchSize int
	flushTime time.Duration
}

func NewIngestor(logger *zap.Logger, repo store.Repository) Ingestor {
	return &ingestor{
		logger:    logger,
		repo:      repo,
		logChan:   make(chan *model.RequestLog, 4096),
		batchSize: 50,
		flushTime: 5 * time.Second,
	}
}

// Log enqueues without blocking; when the buffer is full the entry is
// dropped and a warning emitted.
func (i *ingestor) Log(log *model.RequestLog) {
	select {
	case i.logChan <- log:
	default:
		i.logger.Warn("Request log buffer full, dropping entry", zap.String("request_id", log.ID))
	}
}

func (i *ingestor) Start(ctx context.Context) {
	go i.worker(ctx)
}

func (i *ingestor) Stop() {
	close(i.logChan)
}

func (i *ingestor) worker(ctx context.Context) {
	batch := make([]*model.RequestLog, 0, i.batchSize)
	ticker := time.NewTicker(i.flushTime)
	defer ticker.Stop()

	flush := func() {
		for _, entry := range batch {
			if err := i.repo.Requests().Log(context.Background(), entry); err != nil {
				i.logger.Error("Failed to persist request log",
					zap.String("id", entry.ID), zap.Error(err))
			}
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry, ok := <-i.logChan:
			if !ok {
				flush()
				return
			}
			batch = append(batch, entry)
			if len(batch) >= i.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			flush()
			return
		}
	}
}
