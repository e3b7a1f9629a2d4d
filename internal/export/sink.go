// Package export writes collected games and their statistics to disk.
package export

import (
	"errors"
	"path/filepath"

	"github.com/vytor/chessstats/internal/models"
)

// RowSink receives statistics rows in order.
type RowSink interface {
	WriteRow(row models.StatsRow) error
	Close() error
}

// PGNPath is where the game archive for name is written.
func PGNPath(dir, name string) string {
	return filepath.Join(dir, name+".pgn")
}

// StatsPath is where the statistics file for name is written.
func StatsPath(dir, name string) string {
	return filepath.Join(dir, name+"_stats.csv")
}

// MultiSink forwards every row to each sink in turn.
type MultiSink []RowSink

func (m MultiSink) WriteRow(row models.StatsRow) error {
	for _, s := range m {
		if err := s.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and joins their errors.
func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
