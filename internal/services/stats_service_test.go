package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessstats/internal/chesscom"
	"github.com/vytor/chessstats/internal/models"
	"github.com/vytor/chessstats/internal/outcome"
	"github.com/vytor/chessstats/internal/services"
)

type fakeCountries struct {
	mock.Mock
}

func (f *fakeCountries) Resolve(ctx context.Context, profileURL string) (string, error) {
	args := f.Called(ctx, profileURL)
	return args.String(0), args.Error(1)
}

type memorySink struct {
	rows []models.StatsRow
}

func (m *memorySink) WriteRow(r models.StatsRow) error {
	m.rows = append(m.rows, r)
	return nil
}

func (m *memorySink) Close() error { return nil }

func side(username string, rating int, result string) chesscom.Player {
	return chesscom.Player{Username: username, Rating: rating, Result: result, ID: "profile/" + username}
}

func TestAssemble_PerspectiveAndDifferential(t *testing.T) {
	countries := &fakeCountries{}
	countries.On("Resolve", mock.Anything, "profile/bob").Return("US", nil)
	countries.On("Resolve", mock.Anything, "profile/carol").Return("?", errors.New("404"))

	games := []chesscom.MonthlyGame{
		{
			EndTime: 1704067200, TimeClass: "blitz",
			White: side("alice", 1500, "agreed"), Black: side("bob", 1600, "agreed"),
		},
		{
			EndTime: 1704153600, TimeClass: "rapid",
			White: side("carol", 1600, "resigned"), Black: side("ALICE", 1500, "win"),
		},
	}

	sink := &memorySink{}
	sum, err := services.NewStatsService(nil, countries).Assemble(context.Background(), "Alice", games, sink)
	require.NoError(t, err)
	assert.Equal(t, services.AssembleSummary{Rows: 2}, sum)
	require.Len(t, sink.rows, 2)

	first := sink.rows[0]
	assert.Equal(t, "white", first.Color)
	assert.Equal(t, "bob", first.Opponent)
	assert.Equal(t, outcome.Draw, first.Score)
	assert.Equal(t, "US", first.Country)
	assert.Equal(t, 100, first.RatingDiff())
	assert.Equal(t, "2024-01-01 00:00:00", first.Record()[0])

	second := sink.rows[1]
	assert.Equal(t, "black", second.Color)
	assert.Equal(t, "carol", second.Opponent)
	assert.Equal(t, outcome.Win, second.Score)
	assert.Equal(t, "?", second.Country)
	assert.Equal(t, 100, second.RatingDiff())
	assert.Equal(t, "rapid", second.TimeClass)
}

func TestAssemble_UnmatchedGameIsSkipped(t *testing.T) {
	countries := &fakeCountries{}
	games := []chesscom.MonthlyGame{{
		URL:   "https://www.chess.com/game/live/42",
		White: side("bob", 1500, "win"), Black: side("carol", 1500, "resigned"),
	}}

	sink := &memorySink{}
	sum, err := services.NewStatsService(nil, countries).Assemble(context.Background(), "alice", games, sink)
	require.NoError(t, err)

	assert.Equal(t, services.AssembleSummary{Unmatched: 1}, sum)
	assert.Empty(t, sink.rows)
	countries.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestAssemble_UnknownResultCodeIsUnresolved(t *testing.T) {
	countries := &fakeCountries{}
	countries.On("Resolve", mock.Anything, mock.Anything).Return("FR", nil)
	games := []chesscom.MonthlyGame{{
		White: side("alice", 1500, "kingofthehill"), Black: side("bob", 1500, "win"),
	}}

	sink := &memorySink{}
	_, err := services.NewStatsService(nil, countries).Assemble(context.Background(), "alice", games, sink)
	require.NoError(t, err)
	require.Len(t, sink.rows, 1)
	assert.Equal(t, "?", sink.rows[0].Record()[3])
}

func TestAssemble_CustomClassifierTable(t *testing.T) {
	countries := &fakeCountries{}
	countries.On("Resolve", mock.Anything, mock.Anything).Return("FR", nil)
	games := []chesscom.MonthlyGame{{
		White: side("alice", 1500, "kingofthehill"), Black: side("bob", 1500, "win"),
	}}

	classifier := outcome.NewClassifier(outcome.DefaultTable().Merge(outcome.Table{"kingofthehill": outcome.Loss}))
	sink := &memorySink{}
	_, err := services.NewStatsService(classifier, countries).Assemble(context.Background(), "alice", games, sink)
	require.NoError(t, err)
	assert.Equal(t, outcome.Loss, sink.rows[0].Score)
}

func TestAssemble_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	countries := &fakeCountries{}
	countries.On("Resolve", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return("?", context.Canceled)

	games := []chesscom.MonthlyGame{
		{White: side("alice", 1500, "win"), Black: side("bob", 1500, "resigned")},
		{White: side("alice", 1500, "win"), Black: side("carol", 1500, "resigned")},
	}

	sink := &memorySink{}
	_, err := services.NewStatsService(nil, countries).Assemble(ctx, "alice", games, sink)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sink.rows)
	countries.AssertNumberOfCalls(t, "Resolve", 1)
}
