package mock

import (
	"context"

	"github.com/fwojciec/llmstxt"
)

var _ llmstxt.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of llmstxt.URLSource.
type URLSource struct {
	URLsFn func(ctx context.Context, source string) ([]string, error)
}

func (s *URLSource) URLs(ctx context.Context, source string) ([]string, error) {
	return s.URLsFn(ctx, source)
}
