package services

import (
	"context"
	"fmt"
	"os"

	"github.com/vytor/chessstats/internal/export"
	"github.com/vytor/chessstats/internal/logger"
	"github.com/vytor/chessstats/internal/repository"
)

// RunSummary describes a finished export.
type RunSummary struct {
	Games     int
	Rows      int
	Unmatched int
	// Stored is how many rows the stats database holds for the player after
	// the run. It stays 0 without a database.
	Stored    int
	PGNPath   string
	StatsPath string
}

// ExportService runs a whole export for one player
type ExportService interface {
	Run(ctx context.Context, username string) (RunSummary, error)
}

// ExportOptions configure where and what ExportService writes.
type ExportOptions struct {
	OutputDir string
	Filter    CollectFilter
	// StatsRepo, when set, receives every row in addition to the CSV file.
	StatsRepo repository.StatsRepository
}

type exportService struct {
	collector CollectService
	stats     StatsService
	opts      ExportOptions
}

// NewExportService creates a new ExportService
func NewExportService(collector CollectService, stats StatsService, opts ExportOptions) ExportService {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return &exportService{collector: collector, stats: stats, opts: opts}
}

// Run collects the games, then writes the PGN archive and the statistics.
// Nothing is written if the archive list cannot be fetched.
func (s *exportService) Run(ctx context.Context, username string) (RunSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("export").WithField("username", username)
	sum := RunSummary{
		PGNPath:   export.PGNPath(s.opts.OutputDir, username),
		StatsPath: export.StatsPath(s.opts.OutputDir, username),
	}

	games, err := s.collector.Collect(ctx, username, s.opts.Filter)
	if err != nil {
		return sum, err
	}
	sum.Games = len(games)
	log.Info("Found %d games.", len(games))

	if err := os.MkdirAll(s.opts.OutputDir, 0o755); err != nil {
		return sum, fmt.Errorf("create output dir: %w", err)
	}

	if err := export.WritePGNFile(sum.PGNPath, games); err != nil {
		return sum, fmt.Errorf("write pgn archive: %w", err)
	}
	log.Info("wrote %d games to %s", len(games), sum.PGNPath)

	csvWriter, err := export.CreateCSV(sum.StatsPath)
	if err != nil {
		return sum, fmt.Errorf("create stats file: %w", err)
	}
	sinks := export.MultiSink{csvWriter}
	if s.opts.StatsRepo != nil {
		sinks = append(sinks, export.NewDBSink(ctx, s.opts.StatsRepo, username))
	}

	assembled, err := s.stats.Assemble(ctx, username, games, sinks)
	sum.Rows = csvWriter.Rows()
	sum.Unmatched = assembled.Unmatched
	if closeErr := sinks.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("finish stats output: %w", closeErr)
	}
	if err != nil {
		return sum, err
	}
	if sum.Rows != assembled.Rows {
		return sum, fmt.Errorf("stats file has %d rows, assembled %d", sum.Rows, assembled.Rows)
	}

	if s.opts.StatsRepo != nil {
		stored, err := s.opts.StatsRepo.CountByUsername(ctx, username)
		if err != nil {
			log.Warn("could not count stored rows: %v", err)
		} else {
			sum.Stored = stored
			log.Info("stats database holds %d rows for %s", stored, username)
		}
	}

	if sum.Unmatched > 0 {
		log.Warn("%d games did not include %s and were left out of the statistics", sum.Unmatched, username)
	}
	log.Info("wrote %d rows to %s", sum.Rows, sum.StatsPath)
	return sum, nil
}
