package llmstxt

import "strings"

// MaxDescriptionLength bounds descriptions rendered into the document.
const MaxDescriptionLength = 150

// CleanDescription trims a description and truncates it to
// MaxDescriptionLength characters, replacing the tail with an ellipsis.
// A description exactly at the limit is returned unchanged.
func CleanDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	runes := []rune(desc)
	if len(runes) > MaxDescriptionLength {
		return string(runes[:MaxDescriptionLength-3]) + "..."
	}
	return desc
}

// FirstSentence returns the first sentence of text, split on ". ".
func FirstSentence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, ". "); i >= 0 {
		return text[:i+1]
	}
	return text
}

// ResolveDescription walks the description fallback chain: summarizer output,
// meta description, first sentence of the main content, the section default,
// and finally the global default. The result is always non-empty. The
// truncation law applies to the meta and first-sentence sources; summarizer
// output is trimmed only.
func ResolveDescription(summary, metaDescription, mainContent, sectionDefault string) string {
	if s := strings.TrimSpace(summary); s != "" {
		return s
	}
	if s := CleanDescription(metaDescription); s != "" {
		return s
	}
	if s := CleanDescription(FirstSentence(mainContent)); s != "" {
		return s
	}
	if s := strings.TrimSpace(sectionDefault); s != "" {
		return s
	}
	return DefaultDescription
}
