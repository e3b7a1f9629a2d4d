// Package pacing spaces out requests to the chess.com API.
package pacing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Pacer is consulted after every remote call.
type Pacer interface {
	Pause(ctx context.Context) error
}

// Fixed waits the same interval after every call, whatever the outcome.
type Fixed struct {
	Interval time.Duration
}

func (f Fixed) Pause(ctx context.Context) error {
	if f.Interval <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(f.Interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TokenBucket allows one call per interval on average with no burst.
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket creates a token bucket refilled once per interval.
func NewTokenBucket(interval time.Duration) *TokenBucket {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &TokenBucket{limiter: rate.NewLimiter(limit, 1)}
}

func (b *TokenBucket) Pause(ctx context.Context) error {
	return b.limiter.Wait(ctx)
}

// None never waits.
type None struct{}

func (None) Pause(ctx context.Context) error { return ctx.Err() }

const (
	ModeFixed = "fixed"
	ModeToken = "token"
)

// New builds a Pacer for the given mode.
func New(mode string, interval time.Duration) (Pacer, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeFixed:
		return Fixed{Interval: interval}, nil
	case ModeToken:
		return NewTokenBucket(interval), nil
	default:
		return nil, fmt.Errorf("unknown pacing mode %q", mode)
	}
}
