package chesscom_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessstats/internal/chesscom"
	apperrors "github.com/vytor/chessstats/internal/errors"
	"github.com/vytor/chessstats/internal/testutil"
)

func newClient(api *testutil.FakeAPI) *chesscom.Client {
	return chesscom.New(chesscom.WithBaseURL(api.URL()))
}

func TestFetchArchives_ReturnsOldestFirst(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddArchive("alice", "2024/01")
	api.AddArchive("alice", "2024/02")
	api.AddArchive("alice", "2024/03")

	archives, err := newClient(api).FetchArchives(context.Background(), "Alice")
	require.NoError(t, err)

	assert.Equal(t, []string{
		api.ArchiveURL("alice", "2024/01"),
		api.ArchiveURL("alice", "2024/02"),
		api.ArchiveURL("alice", "2024/03"),
	}, archives)
}

func TestFetchArchives_SendsUserAgent(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddArchive("alice", "2024/01")

	_, err := chesscom.New(
		chesscom.WithBaseURL(api.URL()),
		chesscom.WithUserAgent("chessstats-test/1.0"),
	).FetchArchives(context.Background(), "alice")
	require.NoError(t, err)

	reqs := api.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/pub/player/alice/games/archives", reqs[0].Path)
	assert.Equal(t, "chessstats-test/1.0", reqs[0].UserAgent)
}

func TestFetchArchives_MissingSignatureIsRejected(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddArchive("alice", "2024/01")

	_, err := chesscom.New(
		chesscom.WithBaseURL(api.URL()),
		chesscom.WithUserAgent(""),
	).FetchArchives(context.Background(), "alice")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.StatusOf(err))
}

func TestFetchArchives_NonOKIsFatal(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.SetStatus("/pub/player/ghost/games/archives", http.StatusNotFound)

	archives, err := newClient(api).FetchArchives(context.Background(), "ghost")
	require.Error(t, err)
	assert.Nil(t, archives)
	assert.True(t, apperrors.IsFatal(err))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRemoteFetch))
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}

func TestFetchMonthly_DecodesGames(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	game := chesscom.MonthlyGame{
		URL:       "https://www.chess.com/game/live/1",
		PGN:       "[Event \"Live Chess\"]\n\n1. e4 e5 1-0",
		TimeClass: "blitz",
		EndTime:   1704067200,
		White:     api.Player("alice", 1400, "win"),
		Black:     api.Player("bob", 1350, "resigned"),
	}
	api.AddArchive("alice", "2024/01", game)

	games, err := newClient(api).FetchMonthly(context.Background(), api.ArchiveURL("alice", "2024/01"))
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, game, games[0])
	assert.Equal(t, api.ProfileURL("bob"), games[0].Black.ID)
}

func TestFetchMonthly_MissingGamesField(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddArchive("alice", "2024/01")

	games, err := newClient(api).FetchMonthly(context.Background(), api.ArchiveURL("alice", "2024/01"))
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestFetchMonthly_NonOKIsRecoverable(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddArchive("alice", "2024/01")
	api.SetStatus("/pub/player/alice/games/2024/01", http.StatusInternalServerError)

	_, err := newClient(api).FetchMonthly(context.Background(), api.ArchiveURL("alice", "2024/01"))
	require.Error(t, err)
	assert.False(t, apperrors.IsFatal(err))
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusOf(err))
}

func TestFetchProfile(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.SetProfile("bob", "US")
	api.SetProfile("carol", "")

	p, err := newClient(api).FetchProfile(context.Background(), api.ProfileURL("bob"))
	require.NoError(t, err)
	assert.Equal(t, api.URL()+"/pub/country/US", p.Country)

	p, err = newClient(api).FetchProfile(context.Background(), api.ProfileURL("carol"))
	require.NoError(t, err)
	assert.Empty(t, p.Country)

	_, err = newClient(api).FetchProfile(context.Background(), api.ProfileURL("nobody"))
	require.Error(t, err)
	assert.False(t, apperrors.IsFatal(err))
}
