package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/chessstats/internal/logger"
	"github.com/vytor/chessstats/internal/models"
	"github.com/vytor/chessstats/internal/pgn"
	"github.com/vytor/chessstats/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var statsColumns = []string{
	"username", "played_at", "color", "opponent", "score", "player_rating",
	"opponent_rating", "time_class", "country", "rating_diff", "game_url",
	"eco_code", "opening_name", "ply_count",
}

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// InsertBatch writes rows in one transaction. Opening and ply count are read
// from each row's PGN; a PGN that does not parse still gets stored.
func (r *statsRepository) InsertBatch(ctx context.Context, username string, rows []models.StatsRow) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("batch inserting %d rows", len(rows))

	if len(rows) == 0 {
		return 0, nil
	}
	username = strings.ToLower(username)

	var inserted int
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		// SQLite caps bound parameters per statement, so insert in chunks.
		const chunk = 50
		for start := 0; start < len(rows); start += chunk {
			end := min(start+chunk, len(rows))

			q := sqlBuilder.Insert("game_stats").Columns(statsColumns...)
			for _, row := range rows[start:end] {
				summary, err := pgn.Summarize(row.PGN)
				if err != nil {
					log.Warn("could not summarize game %s: %v", row.GameURL, err)
				}
				q = q.Values(
					username, row.Date.UTC(), row.Color, row.Opponent, row.Score.String(),
					row.PlayerRating, row.OpponentRating, row.TimeClass, row.Country,
					row.RatingDiff(), row.GameURL, summary.ECOCode, summary.OpeningName, summary.Plies,
				)
			}

			query, args, err := q.ToSql()
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				log.Error("failed to insert stats rows: %v", err)
				return err
			}
			n, _ := res.RowsAffected()
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Debug("batch insert completed, %d rows", inserted)
	return inserted, nil
}

func (r *statsRepository) CountByUsername(ctx context.Context, username string) (int, error) {
	query, args, err := sqlBuilder.Select("COUNT(*)").From("game_stats").
		Where(squirrel.Eq{"username": strings.ToLower(username)}).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
