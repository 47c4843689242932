package mock

import "github.com/fwojciec/llmstxt"

var _ llmstxt.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of llmstxt.Cleaner.
type Cleaner struct {
	CleanFn func(rawHTML, pageURL string) *llmstxt.PageContent
}

func (c *Cleaner) Clean(rawHTML, pageURL string) *llmstxt.PageContent {
	return c.CleanFn(rawHTML, pageURL)
}
