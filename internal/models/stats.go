package models

import (
	"strconv"
	"time"

	"github.com/vytor/chessstats/internal/outcome"
)

// DateLayout is how game end times are written to the statistics file.
const DateLayout = "2006-01-02 15:04:05"

// StatsHeader lists the statistics file columns in order.
var StatsHeader = []string{
	"Date",
	"Color",
	"Opponent",
	"Score",
	"Player rating before match",
	"Opponent rating before match",
	"Time control",
	"Country",
	"Rating difference",
}

// StatsRow is one game seen from the queried player's side.
type StatsRow struct {
	Date           time.Time     `json:"date"`
	Color          string        `json:"color"`
	Opponent       string        `json:"opponent"`
	Score          outcome.Score `json:"score"`
	PlayerRating   int           `json:"player_rating"`
	OpponentRating int           `json:"opponent_rating"`
	TimeClass      string        `json:"time_class"`
	Country        string        `json:"country"`

	// Not part of the CSV; carried for the optional database export.
	GameURL string `json:"game_url"`
	PGN     string `json:"-"`
}

// RatingDiff is opponent rating minus own rating.
func (r StatsRow) RatingDiff() int {
	return r.OpponentRating - r.PlayerRating
}

// Record renders the row in StatsHeader order.
func (r StatsRow) Record() []string {
	return []string{
		r.Date.UTC().Format(DateLayout),
		r.Color,
		r.Opponent,
		r.Score.String(),
		strconv.Itoa(r.PlayerRating),
		strconv.Itoa(r.OpponentRating),
		r.TimeClass,
		r.Country,
		strconv.Itoa(r.RatingDiff()),
	}
}
