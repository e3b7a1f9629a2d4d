package repository

import (
	"context"

	"github.com/vytor/chessstats/internal/models"
)

// StatsRepository persists exported statistics rows.
type StatsRepository interface {
	InsertBatch(ctx context.Context, username string, rows []models.StatsRow) (int, error)
	CountByUsername(ctx context.Context, username string) (int, error)
}
