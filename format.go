package llmstxt

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// NoURLsMessage is the terminal output for an empty input URL list.
const NoURLsMessage = "No valid URLs provided."

// FormatRecord renders a page record as a Markdown bullet line:
//
//	- [Title](url): description
//
// with an optional " ([name.md](companionURL))" suffix when a companion
// Markdown document was found.
func FormatRecord(rec PageRecord) string {
	line := fmt.Sprintf("- [%s](%s): %s", rec.Title, rec.URL, rec.Description)
	if rec.CompanionURL != "" {
		line += fmt.Sprintf(" ([%s](%s))", companionName(rec.CompanionURL), rec.CompanionURL)
	}
	return line
}

// companionName returns the basename of the companion URL's path for use as
// link text, e.g. "page.md".
func companionName(companionURL string) string {
	parsed, err := url.Parse(companionURL)
	if err != nil {
		return path.Base(companionURL)
	}
	return path.Base(parsed.Path)
}

// FormatHeader renders the document header: site name and description.
func FormatHeader(siteName, siteDescription string) string {
	return fmt.Sprintf("# %s\n> %s\n", siteName, siteDescription)
}

// FormatFooter renders the trailing generation-metadata comment. The
// enabled optional features are recorded so consumers can tell how the
// document was produced.
func FormatFooter(now time.Time, jsRendering bool, aiModel string) string {
	var sb strings.Builder
	sb.WriteString("<!-- Generated by LLMS.txt Generator on ")
	sb.WriteString(now.Format("2006-01-02 15:04:05"))
	if jsRendering {
		sb.WriteString(" with JavaScript rendering")
	}
	if aiModel != "" {
		sb.WriteString(" and AI descriptions (")
		sb.WriteString(aiModel)
		sb.WriteString(")")
	}
	sb.WriteString(" -->")
	return sb.String()
}
