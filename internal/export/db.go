package export

import (
	"context"

	"github.com/vytor/chessstats/internal/logger"
	"github.com/vytor/chessstats/internal/models"
	"github.com/vytor/chessstats/internal/repository"
)

// DBSink collects rows and stores them in one batch when closed.
type DBSink struct {
	ctx      context.Context
	repo     repository.StatsRepository
	username string
	rows     []models.StatsRow
}

func NewDBSink(ctx context.Context, repo repository.StatsRepository, username string) *DBSink {
	return &DBSink{ctx: ctx, repo: repo, username: username}
}

func (s *DBSink) WriteRow(row models.StatsRow) error {
	s.rows = append(s.rows, row)
	return nil
}

func (s *DBSink) Close() error {
	n, err := s.repo.InsertBatch(s.ctx, s.username, s.rows)
	if err != nil {
		return err
	}
	logger.FromContext(s.ctx).WithPrefix("export").Info("stored %d rows in stats database", n)
	s.rows = nil
	return nil
}
