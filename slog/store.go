package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/threadex"
)

// Ensure LoggingStore implements threadex.ThreadStore.
var _ threadex.ThreadStore = (*LoggingStore)(nil)

// LoggingStore wraps a ThreadStore with logging.
type LoggingStore struct {
	next   threadex.ThreadStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next threadex.ThreadStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs the operation.
func (s *LoggingStore) Save(ctx context.Context, filename, content string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save",
			"filename", filename,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, filename, content)
}
