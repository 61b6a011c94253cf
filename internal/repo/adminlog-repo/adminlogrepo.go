package adminlogrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/webkuhmanis/coinpay/internal/domain"
	"github.com/webkuhmanis/coinpay/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Append writes one audit row. Entries are never updated or deleted.
func (r *Repository) Append(ctx context.Context, entry *domain.AdminLogEntry) (*domain.AdminLogEntry, error) {
	query := `
        INSERT INTO admin_logs (admin_id, action, target_id, details)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, entry.AdminID, entry.Action, entry.TargetID, entry.Details).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		zap.L().Error("can't append admin log entry", zap.Error(err))
		return nil, err
	}
	return entry, nil
}
