package mock

import "github.com/fwojciec/llmstxt"

var _ llmstxt.Converter = (*Converter)(nil)

// Converter is a mock implementation of llmstxt.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
