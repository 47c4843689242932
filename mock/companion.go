package mock

import (
	"context"

	"github.com/fwojciec/llmstxt"
)

var _ llmstxt.CompanionLocator = (*CompanionLocator)(nil)

// CompanionLocator is a mock implementation of llmstxt.CompanionLocator.
type CompanionLocator struct {
	FindCompanionFn func(ctx context.Context, pageURL string) (string, error)
}

func (l *CompanionLocator) FindCompanion(ctx context.Context, pageURL string) (string, error) {
	return l.FindCompanionFn(ctx, pageURL)
}
