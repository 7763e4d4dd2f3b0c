package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/openbridge-ai/openbridge/internal/store"
	"github.com/openbridge-ai/openbridge/internal/store/model"
)

// Repository implements store.Repository on sqlite.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Requests() store.RequestRepository {
	return &requestRepo{db: r.db}
}

type requestRepo struct {
	db *sqlx.DB
}

func (r *requestRepo) Log(ctx context.Context, log *model.RequestLog) error {
	query := `
	INSERT INTO request_logs (
		id, model, provider_base_url, status_code, latency_ms, resolve_ms, created_at
	) VALUES (
		:id, :model, :provider_base_url, :status_code, :latency_ms, :resolve_ms, :created_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, log)
	return err
}

func (r *requestRepo) GetRecent(ctx context.Context, limit int) ([]model.RequestLog, error) {
	var logs []model.RequestLog
	query := `SELECT * FROM request_logs ORDER BY created_at DESC, id DESC LIMIT ?`
	err := r.db.SelectContext(ctx, &logs, query, limit)
	return logs, err
}
