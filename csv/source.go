// Package csv reads page URLs from CSV files, the common export format of
// site crawlers and audit tools.
package csv

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/llmstxt"
)

// urlColumns are header names recognized as the URL column, checked as
// substrings so "Page URL" and "link_url" both match.
var urlColumns = []string{"url", "link", "href", "path"}

// Ensure Source implements llmstxt.URLSource at compile time.
var _ llmstxt.URLSource = (*Source)(nil)

// Source reads URLs from a CSV file. The URL column is located by header
// name; files without a recognizable header fall back to the first column.
type Source struct{}

// NewSource creates a new Source.
func NewSource() *Source {
	return &Source{}
}

// URLs reads the CSV file at path and returns the http(s) URLs it contains.
func (s *Source) URLs(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "opening CSV file: %v", err)
	}
	defer f.Close()

	return Parse(ctx, f)
}

// Parse reads CSV records from r and returns the http(s) URLs found in the
// URL column.
func Parse(ctx context.Context, r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "parsing CSV: %v", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	col, hasHeader := urlColumn(records[0])

	var urls []string
	for i, record := range records {
		if i == 0 && hasHeader {
			continue
		}
		if col >= len(record) {
			continue
		}
		value := strings.TrimSpace(record[col])
		if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
			urls = append(urls, value)
		}
	}

	return urls, nil
}

// urlColumn returns the index of the URL column and whether the first row
// is a header.
func urlColumn(header []string) (int, bool) {
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for _, candidate := range urlColumns {
			if strings.Contains(name, candidate) {
				return i, true
			}
		}
	}
	return 0, false
}
