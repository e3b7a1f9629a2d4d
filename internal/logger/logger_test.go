package logger_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/chessstats/internal/logger"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
}

func newBufferLogger(buf *bytes.Buffer, level logger.Level) *logger.Logger {
	return logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(level),
		logger.WithColors(false),
		logger.WithClock(fixedClock),
	)
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, logger.WARN)

	log.Debug("debug line")
	log.Info("info line")
	log.Warn("warn line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "WARN  ")
	assert.Contains(t, out, "warn line")
}

func TestLogger_PrefixAndSortedFields(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, logger.DEBUG).
		WithPrefix("chesscom").
		WithFields(map[string]any{"username": "alice", "archive": 3})

	log.Info("fetched %d games", 12)

	out := buf.String()
	assert.Contains(t, out, "2024-01-15 10:30:00.000 INFO  [chesscom] ")
	assert.Contains(t, out, "fetched 12 games archive=3 username=alice\n")
	assert.Contains(t, out, "logger_test.go:")
}

func TestLogger_DerivedDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newBufferLogger(&buf, logger.INFO)
	_ = parent.WithField("k", "v")

	parent.Info("plain")
	assert.NotContains(t, buf.String(), "k=v")
}

func TestLookupLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  logger.Level
		valid bool
	}{
		{"DEBUG", logger.DEBUG, true},
		{"info", logger.INFO, true},
		{"warning", logger.WARN, true},
		{" ERROR ", logger.ERROR, true},
		{"verbose", logger.INFO, false},
		{"", logger.INFO, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := logger.LookupLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, logger.INFO).WithPrefix("ctx")
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
