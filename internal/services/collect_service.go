package services

import (
	"context"

	"github.com/vytor/chessstats/internal/chesscom"
	apperrors "github.com/vytor/chessstats/internal/errors"
	"github.com/vytor/chessstats/internal/logger"
	"github.com/vytor/chessstats/internal/pacing"
)

// CollectFilter narrows the collected games. The zero value keeps everything.
type CollectFilter struct {
	TimeClass string
}

func (f CollectFilter) keep(g chesscom.MonthlyGame) bool {
	return f.TimeClass == "" || g.TimeClass == f.TimeClass
}

// CollectService gathers a player's full game history
type CollectService interface {
	Collect(ctx context.Context, username string, filter CollectFilter) ([]chesscom.MonthlyGame, error)
}

type collectService struct {
	client chesscom.ClientInterface
	pacer  pacing.Pacer
}

// NewCollectService creates a new CollectService. pacer runs after every
// monthly archive request.
func NewCollectService(client chesscom.ClientInterface, pacer pacing.Pacer) CollectService {
	if pacer == nil {
		pacer = pacing.None{}
	}
	return &collectService{client: client, pacer: pacer}
}

// Collect fetches every monthly archive in chronological order. Failing to list
// the archives is fatal; a failing month is logged and skipped.
func (s *collectService) Collect(ctx context.Context, username string, filter CollectFilter) ([]chesscom.MonthlyGame, error) {
	log := logger.FromContext(ctx).WithPrefix("collector").WithField("username", username)
	if filter.TimeClass != "" {
		log = log.WithField("time_class", filter.TimeClass)
	}

	archives, err := s.client.FetchArchives(ctx, username)
	if err != nil {
		log.Error("failed to fetch archives: %v", err)
		return nil, err
	}

	var games []chesscom.MonthlyGame
	var skipped int
	for i, url := range archives {
		log.Info("downloading archive %d/%d: %s", i+1, len(archives), url)

		monthly, err := s.client.FetchMonthly(ctx, url)
		switch {
		case err == nil:
			for _, g := range monthly {
				if filter.keep(g) {
					games = append(games, g)
				}
			}
		case apperrors.IsFatal(err):
			return nil, err
		default:
			skipped++
			log.Warn("skipping archive %s (status %d): %v", url, apperrors.StatusOf(err), err)
		}

		if err := s.pacer.Pause(ctx); err != nil {
			log.Warn("collection interrupted: %v", err)
			return nil, err
		}
	}

	log.Info("found %d games in %d archives (%d skipped)", len(games), len(archives), skipped)
	return games, nil
}
