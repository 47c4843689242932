package llmstxt

import (
	"net/url"
	"strings"
)

// CatchAllTitle is the title of the mandatory catch-all section.
const CatchAllTitle = "Other"

// DefaultDescription is the global fallback used when every other
// description source comes up empty.
const DefaultDescription = "Resource information"

// Section is a named output bucket with ordered keyword matchers and a
// default description used when per-page description resolution yields
// nothing. The keyword table is configuration data: classification behavior
// is fully determined by it.
type Section struct {
	Title              string
	Keywords           []string
	DefaultDescription string

	// Companion marks sections whose pages are probed for sibling
	// Markdown documents.
	Companion bool
}

// IsCatchAll reports whether this section receives unmatched URLs.
func (s Section) IsCatchAll() bool {
	return len(s.Keywords) == 0 && s.Title == CatchAllTitle
}

// DefaultSections returns the standard section table in classification
// order. The catch-all "Other" section is always last.
func DefaultSections() []Section {
	return []Section{
		{
			Title:              "Introduction",
			Keywords:           []string{"introduction", "intro", "overview", "about"},
			DefaultDescription: "Introduction and overview",
			Companion:          true,
		},
		{
			Title:              "Get started",
			Keywords:           []string{"get-started", "getting-started", "quickstart", "setup", "installation"},
			DefaultDescription: "Getting started resource",
			Companion:          true,
		},
		{
			Title:              "Dashboard",
			Keywords:           []string{"dashboard", "admin", "console"},
			DefaultDescription: "Dashboard or console page",
			Companion:          true,
		},
		{
			Title:              "API Reference",
			Keywords:           []string{"api", "reference", "sdk", "endpoints", "graphql", "swagger", "rest"},
			DefaultDescription: "API documentation",
			Companion:          true,
		},
		{
			Title: "Guides",
			Keywords: []string{
				"guide", "tutorial", "how-to", "howto", "walkthrough",
				"-example", "example-", "_example", "example_",
				"-examples", "examples-", "_examples", "examples_",
				"use-case", "getting-started/examples",
			},
			DefaultDescription: "Guide or tutorial",
			Companion:          true,
		},
		{
			Title:              CatchAllTitle,
			DefaultDescription: DefaultDescription,
		},
	}
}

// Classify assigns each URL to exactly one section by ordered keyword
// matching. A section matches when any of its keywords is a substring of the
// lower-cased full URL or of its lower-cased path; the first matching
// section wins. URLs matched by no section go to the catch-all, which is
// checked last regardless of its position in the table. Classify is a pure
// function: the same input always yields the same buckets.
func Classify(urls []string, sections []Section) map[string][]string {
	buckets := make(map[string][]string, len(sections))
	for _, s := range sections {
		buckets[s.Title] = nil
	}

	catchAll := CatchAllTitle
	for _, s := range sections {
		if s.IsCatchAll() {
			catchAll = s.Title
		}
	}

	for _, rawURL := range urls {
		full := strings.ToLower(rawURL)
		path := full
		if parsed, err := url.Parse(rawURL); err == nil {
			path = strings.ToLower(parsed.Path)
		}

		assigned := catchAll
	match:
		for _, s := range sections {
			if s.IsCatchAll() {
				continue
			}
			for _, kw := range s.Keywords {
				if strings.Contains(full, kw) || strings.Contains(path, kw) {
					assigned = s.Title
					break match
				}
			}
		}
		buckets[assigned] = append(buckets[assigned], rawURL)
	}

	return buckets
}
