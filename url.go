package llmstxt

import (
	"net/url"
	"regexp"
	"strings"
)

// NormalizeURL strips query parameters and fragments from a URL.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}

// IsValidURL reports whether the URL is an absolute http or https URL.
func IsValidURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host != "" && (parsed.Scheme == "http" || parsed.Scheme == "https")
}

// Domain extracts the host from a URL.
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}

// BaseURL returns the scheme and host of a URL.
func BaseURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

// SiteNameFromURL derives a display name for a site from its domain: the
// second-to-last dot-segment, capitalized (docs.example.com -> Example).
// Domains without a dot are returned as is.
func SiteNameFromURL(rawURL string) string {
	host := Domain(rawURL)
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return host
	}
	name := parts[len(parts)-2]
	if name == "" {
		return host
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// HumanizeSegment converts a URL path segment into a readable title:
// hyphens and underscores become spaces and each word is capitalized.
func HumanizeSegment(segment string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// TitleFromURL derives a fallback page title from the URL's last non-empty
// path segment, humanized. A URL with no path yields the domain.
func TitleFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		segments := strings.Split(path, "/")
		if title := HumanizeSegment(segments[len(segments)-1]); title != "" {
			return title
		}
	}
	return parsed.Host
}

var (
	slugSpaceRe  = regexp.MustCompile(`\s+`)
	slugStripRe  = regexp.MustCompile(`[^a-z0-9\-]`)
	slugHyphenRe = regexp.MustCompile(`-+`)
)

// Slugify creates a URL-friendly slug from text: lowercase, spaces to
// hyphens, special characters removed, hyphen runs collapsed.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugHyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
