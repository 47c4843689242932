// Package goquery provides a DOM-based implementation of llmstxt.Cleaner.
// It strips navigation chrome, hidden elements, and boilerplate from raw
// HTML before the main content is extracted.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/llmstxt"
)

// MaxContentLength caps the cleaned text passed downstream. Longer pages are
// truncated with a trailing ellipsis.
const MaxContentLength = 8000

// unwantedTags are removed wholesale before extraction. They carry page
// chrome or interactive widgets, never article content.
var unwantedTags = []string{
	"script", "style", "nav", "header", "footer", "aside", "menu",
	"dialog", "form", "input", "textarea", "button", "select", "option",
	"iframe", "canvas", "map", "object", "embed",
}

// unwantedRoles mark landmark and overlay elements by ARIA role.
var unwantedRoles = []string{
	"navigation", "banner", "contentinfo", "dialog", "alert",
}

// boilerplateRe matches class and id tokens that identify non-content
// elements. Matches are word-bounded so "navy" does not trip on "nav".
var boilerplateRe = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(nav|navbar|navigation|header|footer|sidebar|menu|masthead|bottom|advertisement|ads|social|share|rating|metadata|breadcrumb|breadcrumbs|pagination|related|comment|comments|testimonial|cookie|banner|popup|modal|dialog|consent|gdpr|widget|toolbar|skip-link|visually-hidden|sr-only)(?:[^a-z0-9]|$)`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Ensure Cleaner implements llmstxt.Cleaner at compile time.
var _ llmstxt.Cleaner = (*Cleaner)(nil)

// Cleaner prepares raw HTML for description generation. It removes page
// chrome from the DOM, delegates to a ContentExtractor for the main content,
// and falls back to progressively cruder text extraction when the extractor
// comes up empty. Clean never fails; the zero-value result still carries a
// title derived from the URL.
type Cleaner struct {
	extractor llmstxt.ContentExtractor
}

// NewCleaner creates a Cleaner that delegates main-content extraction to
// extractor. A nil extractor is allowed; the cleaned DOM's text is used
// directly.
func NewCleaner(extractor llmstxt.ContentExtractor) *Cleaner {
	return &Cleaner{extractor: extractor}
}

// Clean parses rawHTML, strips boilerplate, and returns the page's title,
// meta description, and main content text.
func (c *Cleaner) Clean(rawHTML, pageURL string) *llmstxt.PageContent {
	pc := &llmstxt.PageContent{
		Title: llmstxt.TitleFromURL(pageURL),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return pc
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		pc.Title = title
	}
	pc.MetaDescription = metaDescription(doc)

	removeBoilerplate(doc)

	cleanedHTML, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		cleanedHTML = ""
	}
	pc.ContentHTML = cleanedHTML

	var content string
	if c.extractor != nil && cleanedHTML != "" {
		if result, err := c.extractor.Extract(cleanedHTML); err == nil {
			content = result.ContentText
			if result.ContentHTML != "" {
				pc.ContentHTML = result.ContentHTML
			}
			if pc.Title == llmstxt.TitleFromURL(pageURL) && result.Title != "" {
				pc.Title = result.Title
			}
		}
	}
	if content == "" {
		content = doc.Text()
	}
	if strings.TrimSpace(content) == "" {
		content = minimalText(rawHTML)
	}

	pc.MainContent = truncate(collapseWhitespace(content), MaxContentLength)

	return pc
}

// metaDescription returns the page's meta description, preferring the
// standard tag over the Open Graph one.
func metaDescription(doc *goquery.Document) string {
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			return desc
		}
	}
	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		return strings.TrimSpace(desc)
	}
	return ""
}

// removeBoilerplate strips chrome elements from the parsed document in
// place.
func removeBoilerplate(doc *goquery.Document) {
	doc.Find(strings.Join(unwantedTags, ", ")).Remove()

	roleSelectors := make([]string, 0, len(unwantedRoles)+1)
	for _, role := range unwantedRoles {
		roleSelectors = append(roleSelectors, `[role="`+role+`"]`)
	}
	roleSelectors = append(roleSelectors, `[aria-modal="true"]`)
	doc.Find(strings.Join(roleSelectors, ", ")).Remove()

	doc.Find("[class], [id]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		if boilerplateRe.MatchString(class) || boilerplateRe.MatchString(id) {
			sel.Remove()
		}
	})

	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		style, _ := sel.Attr("style")
		if isHidden(style) {
			sel.Remove()
		}
	})
}

// isHidden reports whether an inline style hides the element.
func isHidden(style string) bool {
	style = strings.ToLower(whitespaceRe.ReplaceAllString(style, ""))
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}

// minimalText is the last-resort extraction path. It re-parses the original
// HTML and strips only the most obviously non-content tags.
func minimalText(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	doc.Find("script, style, nav, header, footer, aside").Remove()
	return doc.Text()
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
