// Package llmstxt generates llms.txt index files for websites. Given a list
// of page URLs (from a sitemap or a CSV export), it fetches each page,
// extracts a title and description, buckets pages into topical sections, and
// renders a Markdown document summarizing the site for language-model agents.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, rod/, goquery/, openrouter/).
package llmstxt
