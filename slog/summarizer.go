// Package slog provides logging decorators for the service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/llmstxt"
)

// Ensure LoggingSummarizer implements llmstxt.Summarizer.
var _ llmstxt.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with debug logging.
type LoggingSummarizer struct {
	next   llmstxt.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next llmstxt.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize delegates to the wrapped summarizer and logs the operation.
func (s *LoggingSummarizer) Summarize(ctx context.Context, content, title, url string) (desc string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("summarize",
			"url", url,
			"model", s.next.Model(),
			"chars", len(desc),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, content, title, url)
}

// Model delegates to the wrapped summarizer.
func (s *LoggingSummarizer) Model() string {
	return s.next.Model()
}
