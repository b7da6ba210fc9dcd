package slog

import (
	"context"
	"log/slog"
	"time"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Ensure LoggingVersionService implements nab.VersionService.
var _ nab.VersionService = (*LoggingVersionService)(nil)

// LoggingVersionService wraps a VersionService with catalog logging.
type LoggingVersionService struct {
	next   nab.VersionService
	logger *slog.Logger
}

// NewLoggingVersionService creates a new LoggingVersionService.
func NewLoggingVersionService(next nab.VersionService, logger *slog.Logger) *LoggingVersionService {
	return &LoggingVersionService{next: next, logger: logger}
}

// Versions delegates to the wrapped service and logs the snapshot shape.
func (s *LoggingVersionService) Versions(ctx context.Context) (versions *nab.BrowserVersions, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"duration", time.Since(begin),
			"err", err,
		}
		if versions != nil {
			attrs = append(attrs,
				"chrome", len(versions.Chrome),
				"firefox", len(versions.Firefox),
				"safari", len(versions.Safari),
				"last_updated", versions.LastUpdated,
			)
		}
		s.logger.Info("version catalog", attrs...)
	}(time.Now())

	return s.next.Versions(ctx)
}
