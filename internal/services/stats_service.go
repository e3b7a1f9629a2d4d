package services

import (
	"context"
	"time"

	"github.com/vytor/chessstats/internal/chesscom"
	apperrors "github.com/vytor/chessstats/internal/errors"
	"github.com/vytor/chessstats/internal/export"
	"github.com/vytor/chessstats/internal/logger"
	"github.com/vytor/chessstats/internal/models"
	"github.com/vytor/chessstats/internal/outcome"
	"github.com/vytor/chessstats/internal/pgn"
)

// AssembleSummary counts what Assemble did with its input.
type AssembleSummary struct {
	Rows      int
	Unmatched int
}

// StatsService turns collected games into statistics rows
type StatsService interface {
	Assemble(ctx context.Context, username string, games []chesscom.MonthlyGame, sink export.RowSink) (AssembleSummary, error)
}

type statsService struct {
	classifier *outcome.Classifier
	countries  CountryService
}

// NewStatsService creates a new StatsService
func NewStatsService(classifier *outcome.Classifier, countries CountryService) StatsService {
	if classifier == nil {
		classifier = outcome.NewClassifier(nil)
	}
	return &statsService{classifier: classifier, countries: countries}
}

// BuildRow derives the statistics row for game as seen by the player on side.
func BuildRow(side chesscom.Side, game chesscom.MonthlyGame, score outcome.Score, country string) models.StatsRow {
	return models.StatsRow{
		Date:           time.Unix(game.EndTime, 0).UTC(),
		Color:          side.Color.String(),
		Opponent:       side.Opponent.Username,
		Score:          score,
		PlayerRating:   side.Self.Rating,
		OpponentRating: side.Opponent.Rating,
		TimeClass:      game.TimeClass,
		Country:        country,
		GameURL:        game.URL,
		PGN:            game.PGN,
	}
}

// Assemble writes one row per game to sink, in input order. Games where the
// player is on neither side are reported and left out.
func (s *statsService) Assemble(ctx context.Context, username string, games []chesscom.MonthlyGame, sink export.RowSink) (AssembleSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("stats").WithField("username", username)
	var sum AssembleSummary

	for i, game := range games {
		side := chesscom.DeriveSide(username, game)
		if side.Color == chesscom.Unmatched {
			sum.Unmatched++
			err := apperrors.NewUnmatchedPlayerError(username, game.URL)
			log.WithField("game_id", pgn.ExtractGameID(game.URL)).Warn("skipping game: %v", err)
			continue
		}

		score := s.classifier.Score(side.Self.Result)
		if score == outcome.Unresolved {
			log.Debug("unrecognized result code %q in %s", side.Self.Result, game.URL)
		}

		country, err := s.countries.Resolve(ctx, side.Opponent.ID)
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
		if err != nil {
			log.Warn("country unavailable for %s: %v", side.Opponent.Username, err)
		}
		log.Info("%s: %s (%d/%d)", side.Opponent.ID, country, i+1, len(games))

		if err := sink.WriteRow(BuildRow(side, game, score, country)); err != nil {
			log.Error("failed to write row: %v", err)
			return sum, err
		}
		sum.Rows++
	}

	return sum, nil
}
