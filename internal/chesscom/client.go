package chesscom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	apperrors "github.com/vytor/chessstats/internal/errors"
	"github.com/vytor/chessstats/internal/logger"
)

const (
	DefaultBaseURL   = "https://api.chess.com"
	DefaultUserAgent = "Mozilla/5.0"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/")
	}
}

// WithUserAgent sets the client signature sent on every request.
// chess.com answers 403 to requests without one.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type archivesResp struct {
	Archives []string `json:"archives"`
}

type monthlyResp struct {
	Games []MonthlyGame `json:"games"`
}

type profileResp struct {
	Country string `json:"country"`
}

// ArchivesURL returns the archive-list endpoint for username.
func (c *Client) ArchivesURL(username string) string {
	return fmt.Sprintf("%s/pub/player/%s/games/archives", c.baseURL, url.PathEscape(strings.ToLower(username)))
}

// FetchArchives returns the monthly archive URLs for username, oldest first.
// Any failure is fatal for the caller: there is nothing to collect without it.
func (c *Client) FetchArchives(ctx context.Context, username string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("username", username)
	endpoint := c.ArchivesURL(username)

	var out archivesResp
	if err := c.getJSON(ctx, log, endpoint, apperrors.Fatal, &out); err != nil {
		return nil, err
	}

	archives := slices.Clone(out.Archives)
	slices.Reverse(archives)

	log.Info("fetched %d archives for user %s", len(archives), username)
	return archives, nil
}

// FetchMonthly returns the games of one monthly archive. Failures are recoverable.
func (c *Client) FetchMonthly(ctx context.Context, archiveURL string) ([]MonthlyGame, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("archive_url", archiveURL)

	var payload monthlyResp
	if err := c.getJSON(ctx, log, archiveURL, apperrors.Recoverable, &payload); err != nil {
		return nil, err
	}

	log.Debug("fetched %d games from archive", len(payload.Games))
	return payload.Games, nil
}

// FetchProfile returns the player profile behind profileURL. Failures are recoverable.
func (c *Client) FetchProfile(ctx context.Context, profileURL string) (Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("profile_url", profileURL)

	var payload profileResp
	if err := c.getJSON(ctx, log, profileURL, apperrors.Recoverable, &payload); err != nil {
		return Profile{}, err
	}
	return Profile{Country: payload.Country}, nil
}

func (c *Client) getJSON(ctx context.Context, log *logger.Logger, endpoint string, severity apperrors.Severity, dst any) error {
	log.Debug("GET %s", endpoint)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return apperrors.NewRemoteFetchError(endpoint, 0, severity, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return apperrors.NewRemoteFetchError(endpoint, 0, severity, err)
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Debug("non-200 body: %s", string(body))
		return apperrors.NewRemoteFetchError(endpoint, resp.StatusCode, severity, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		log.Error("failed to decode response: %v", err)
		return apperrors.NewRemoteFetchError(endpoint, resp.StatusCode, severity, fmt.Errorf("decode: %w", err))
	}
	return nil
}
