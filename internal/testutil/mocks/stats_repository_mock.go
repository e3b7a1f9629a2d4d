package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessstats/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) InsertBatch(ctx context.Context, username string, rows []models.StatsRow) (int, error) {
	args := m.Called(ctx, username, rows)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountByUsername(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}
