package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/chessstats/internal/db"
)

// NewTestDB opens a SQLite stats database in the test's temp dir with the
// schema applied. It is closed when the test ends.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}
