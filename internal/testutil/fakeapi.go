package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/chessstats/internal/chesscom"
)

// FakeAPI is an in-process stand-in for the chess.com public API.
// Archive lists are served newest first.
type FakeAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	months   map[string][]string
	games    map[string][]chesscom.MonthlyGame
	profiles map[string]map[string]any
	status   map[string]int
	requests []Request
}

// Request is one call observed by FakeAPI.
type Request struct {
	Path      string
	UserAgent string
}

// NewFakeAPI starts a fake server that is shut down when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		months:   map[string][]string{},
		games:    map[string][]chesscom.MonthlyGame{},
		profiles: map[string]map[string]any{},
		status:   map[string]int{},
	}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Get("/pub/player/{username}/games/archives", f.handleArchives)
	r.Get("/pub/player/{username}/games/{year}/{month}", f.handleMonthly)
	r.Get("/pub/player/{username}", f.handleProfile)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the API root to hand to chesscom.WithBaseURL.
func (f *FakeAPI) URL() string { return f.Server.URL }

// ProfileURL is the @id of username's profile on this server.
func (f *FakeAPI) ProfileURL(username string) string {
	return f.Server.URL + "/pub/player/" + strings.ToLower(username)
}

// ArchiveURL is the endpoint of one month, month formatted as YYYY/MM.
func (f *FakeAPI) ArchiveURL(username, month string) string {
	return f.Server.URL + "/pub/player/" + strings.ToLower(username) + "/games/" + month
}

// AddArchive appends a month to username's history. Call in chronological order.
func (f *FakeAPI) AddArchive(username, month string, games ...chesscom.MonthlyGame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.ToLower(username)
	f.months[key] = append(f.months[key], month)
	f.games[key+"/"+month] = games
}

// SetProfile registers a profile. An empty country omits the field.
func (f *FakeAPI) SetProfile(username, country string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body := map[string]any{"username": strings.ToLower(username)}
	if country != "" {
		body["country"] = f.Server.URL + "/pub/country/" + country
	}
	f.profiles[strings.ToLower(username)] = body
}

// SetStatus forces the response status for a request path.
func (f *FakeAPI) SetStatus(path string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[path] = code
}

// Requests returns the calls observed so far.
func (f *FakeAPI) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Player builds a side record whose @id points at this server.
func (f *FakeAPI) Player(username string, rating int, result string) chesscom.Player {
	return chesscom.Player{
		Username: username,
		Rating:   rating,
		Result:   result,
		ID:       f.ProfileURL(username),
	}
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.Header.Get("User-Agent")
		f.mu.Lock()
		f.requests = append(f.requests, Request{Path: r.URL.Path, UserAgent: ua})
		code, forced := f.status[r.URL.Path]
		f.mu.Unlock()

		if ua == "" || strings.HasPrefix(ua, "Go-http-client") {
			http.Error(w, `{"message":"forbidden"}`, http.StatusForbidden)
			return
		}
		if forced {
			http.Error(w, http.StatusText(code), code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) handleArchives(w http.ResponseWriter, r *http.Request) {
	username := strings.ToLower(chi.URLParam(r, "username"))
	f.mu.Lock()
	months, ok := f.months[username]
	f.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	urls := make([]string, 0, len(months))
	for i := len(months) - 1; i >= 0; i-- {
		urls = append(urls, f.ArchiveURL(username, months[i]))
	}
	writeJSON(w, map[string]any{"archives": urls})
}

func (f *FakeAPI) handleMonthly(w http.ResponseWriter, r *http.Request) {
	username := strings.ToLower(chi.URLParam(r, "username"))
	key := username + "/" + chi.URLParam(r, "year") + "/" + chi.URLParam(r, "month")
	f.mu.Lock()
	games, ok := f.games[key]
	f.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	if games == nil {
		writeJSON(w, map[string]any{})
		return
	}
	writeJSON(w, map[string]any{"games": games})
}

func (f *FakeAPI) handleProfile(w http.ResponseWriter, r *http.Request) {
	username := strings.ToLower(chi.URLParam(r, "username"))
	f.mu.Lock()
	body, ok := f.profiles[username]
	f.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, body)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
