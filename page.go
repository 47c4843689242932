package llmstxt

import "context"

// PageRecord is the resolved result of processing one URL. Records are
// immutable once produced; the generator only reads them during assembly.
type PageRecord struct {
	Title       string
	Description string
	URL         string

	// CompanionURL is the resolved URL of a sibling Markdown document,
	// or empty if none was found.
	CompanionURL string

	// ContentHash identifies the page's main content for duplicate
	// detection. Empty when nothing was fetched.
	ContentHash string

	// Content is the page's main content as Markdown. Populated only when
	// full-content output is requested.
	Content string
}

// PageContent holds the cleaned content extracted from one HTML page.
type PageContent struct {
	Title           string
	MetaDescription string

	// MainContent is the visible text of the primary content region,
	// whitespace-collapsed and length-bounded.
	MainContent string

	// ContentHTML is the primary content region as clean HTML, suitable
	// for Markdown conversion. May be empty when only a text fallback
	// pass succeeded.
	ContentHTML string
}

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content. The context controls timeout and cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Cleaner strips boilerplate from raw HTML and extracts a title, a meta
// description, and the main content. Clean never fails: parse errors degrade
// to progressively simpler extraction passes, and in the worst case the
// result carries only URL-derived fields.
type Cleaner interface {
	Clean(rawHTML string, pageURL string) *PageContent
}

// ContentExtractor isolates the primary article/body region of a page.
// Implementations wrap readability-style heuristics.
type ContentExtractor interface {
	// Extract returns the main content as text and as clean HTML.
	// Returns an error when no content region can be identified.
	Extract(html string) (*ExtractResult, error)
}

// ExtractResult holds the output of a ContentExtractor.
type ExtractResult struct {
	Title       string
	ContentText string
	ContentHTML string
}

// Summarizer produces a short description of page content by delegating to
// an external language-model service.
type Summarizer interface {
	// Summarize returns a 1-2 sentence description of the content.
	// The title and url provide additional context for the model.
	Summarize(ctx context.Context, content, title, url string) (string, error)

	// Model returns the model identifier used for summarization.
	Model() string
}

// CompanionLocator probes for a sibling machine-readable Markdown version
// of an HTML page at predictable paths.
type CompanionLocator interface {
	// FindCompanion returns the resolved URL of a live .md twin of the
	// page, or an empty string if none exists. Probe failures are treated
	// as "not found"; only context cancellation is surfaced as an error.
	FindCompanion(ctx context.Context, pageURL string) (string, error)
}

// Converter converts clean HTML to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// URLSource produces the list of page URLs to index.
// Implementations hide sitemap traversal vs tabular-file parsing.
type URLSource interface {
	// URLs returns absolute http(s) URLs in source order.
	URLs(ctx context.Context, source string) ([]string, error)
}

// DomainLimiter provides per-domain rate limiting for outbound requests.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Progress reports per-URL progress during generation.
type Progress struct {
	Section   string
	URL       string
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is called as URLs are processed.
type ProgressFunc func(Progress)
