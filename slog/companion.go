package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/llmstxt"
)

// Ensure LoggingCompanionLocator implements llmstxt.CompanionLocator.
var _ llmstxt.CompanionLocator = (*LoggingCompanionLocator)(nil)

// LoggingCompanionLocator wraps a CompanionLocator with debug logging.
type LoggingCompanionLocator struct {
	next   llmstxt.CompanionLocator
	logger *slog.Logger
}

// NewLoggingCompanionLocator creates a new LoggingCompanionLocator.
func NewLoggingCompanionLocator(next llmstxt.CompanionLocator, logger *slog.Logger) *LoggingCompanionLocator {
	return &LoggingCompanionLocator{next: next, logger: logger}
}

// FindCompanion delegates to the wrapped locator and logs the operation.
func (l *LoggingCompanionLocator) FindCompanion(ctx context.Context, pageURL string) (companion string, err error) {
	defer func(begin time.Time) {
		l.logger.Debug("companion probe",
			"url", pageURL,
			"found", companion != "",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.FindCompanion(ctx, pageURL)
}
