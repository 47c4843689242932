package http

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fwojciec/llmstxt"
)

// DefaultProbeTimeout bounds each companion existence check. Probes are
// opportunistic, so the budget is much tighter than a page fetch.
const DefaultProbeTimeout = 2500 * time.Millisecond

// webExtensions are page extensions that get swapped for .md when deriving
// companion candidates.
var webExtensions = []string{".html", ".htm", ".php", ".aspx", ".asp"}

// Ensure CompanionLocator implements llmstxt.CompanionLocator.
var _ llmstxt.CompanionLocator = (*CompanionLocator)(nil)

// CompanionLocator probes for sibling Markdown documents via HEAD requests.
// Many documentation sites publish .md twins of their HTML pages at
// predictable paths.
type CompanionLocator struct {
	client  *http.Client
	timeout time.Duration
}

// LocatorOption configures a CompanionLocator.
type LocatorOption func(*CompanionLocator)

// WithProbeTimeout sets the per-candidate probe timeout.
func WithProbeTimeout(d time.Duration) LocatorOption {
	return func(l *CompanionLocator) {
		l.timeout = d
	}
}

// NewCompanionLocator creates a new CompanionLocator.
func NewCompanionLocator(opts ...LocatorOption) *CompanionLocator {
	l := &CompanionLocator{
		timeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}

	// Redirects are followed; validation happens on the final URL.
	l.client = &http.Client{
		Timeout: l.timeout,
	}

	return l
}

// FindCompanion derives candidate .md paths for the page URL and returns
// the first candidate that answers 200 with a final URL still ending in .md.
// The suffix check guards against soft-404 redirects to a homepage.
func (l *CompanionLocator) FindCompanion(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", nil
	}

	for _, candidate := range CandidatePaths(parsed) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resolved, ok := l.probe(ctx, candidate)
		if ok {
			return resolved, nil
		}
	}

	return "", nil
}

// CandidatePaths derives companion candidate URLs from a page URL, in probe
// order.
func CandidatePaths(pageURL *url.URL) []string {
	p := pageURL.Path
	base := pageURL.Scheme + "://" + pageURL.Host

	for _, ext := range webExtensions {
		if strings.HasSuffix(strings.ToLower(p), ext) {
			return []string{base + p[:len(p)-len(ext)] + ".md"}
		}
	}

	if strings.HasSuffix(p, "/") {
		trimmed := strings.TrimSuffix(p, "/")
		if trimmed == "" {
			return []string{base + "/index.md"}
		}
		// /docs/x/ probes /docs/x/x.md first, then /docs/x.md.
		name := path.Base(trimmed)
		return []string{
			base + p + name + ".md",
			base + trimmed + ".md",
		}
	}

	if p == "" {
		return []string{base + "/index.md"}
	}

	return []string{base + p + ".md"}
}

// probe issues a HEAD request for the candidate and validates the final
// response. Request failures and timeouts count as "not found".
func (l *CompanionLocator) probe(ctx context.Context, candidate string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, candidate, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return "", false
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	final := resp.Request.URL
	if !strings.HasSuffix(final.Path, ".md") {
		return "", false
	}

	return final.String(), true
}
