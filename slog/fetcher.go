// Package slog provides logging decorators for the core service
// interfaces. Core packages never log directly; observability is layered
// on by wrapping the interfaces here.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Ensure LoggingFetcher implements nab.Fetcher.
var _ nab.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging. Each fetch
// gets a request id so retries and rotations of the same logical
// request can be correlated in the log.
type LoggingFetcher struct {
	next   nab.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next nab.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *nab.Response, err error) {
	requestID := uuid.NewString()

	defer func(begin time.Time) {
		attrs := []any{
			"request_id", requestID,
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		}
		if resp != nil {
			attrs = append(attrs,
				"status", resp.StatusCode,
				"proto", resp.Proto,
				"bytes", len(resp.Body),
			)
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())

	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
