// Package readability provides an alternative llmstxt.ContentExtractor
// built on the Mozilla readability algorithm.
package readability

import (
	"strings"

	"github.com/fwojciec/llmstxt"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements llmstxt.ContentExtractor at compile time.
var _ llmstxt.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*llmstxt.ExtractResult, error) {
	if rawHTML == "" {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &llmstxt.ExtractResult{
		Title:       article.Title,
		ContentText: article.TextContent,
		ContentHTML: article.Content,
	}, nil
}
