package mock

import "github.com/fwojciec/llmstxt"

var _ llmstxt.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of llmstxt.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*llmstxt.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*llmstxt.ExtractResult, error) {
	return e.ExtractFn(html)
}
