package mock

import (
	"context"

	"github.com/fwojciec/llmstxt"
)

var _ llmstxt.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of llmstxt.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, content, title, url string) (string, error)
	ModelFn     func() string
}

func (s *Summarizer) Summarize(ctx context.Context, content, title, url string) (string, error) {
	return s.SummarizeFn(ctx, content, title, url)
}

func (s *Summarizer) Model() string {
	if s.ModelFn == nil {
		return "mock/model"
	}
	return s.ModelFn()
}
