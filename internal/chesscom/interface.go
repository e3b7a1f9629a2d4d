package chesscom

import "context"

// ClientInterface defines the Chess.com API operations the exporter uses.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	FetchArchives(ctx context.Context, username string) ([]string, error)
	FetchMonthly(ctx context.Context, archiveURL string) ([]MonthlyGame, error)
	FetchProfile(ctx context.Context, profileURL string) (Profile, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
