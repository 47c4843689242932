package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/mock"
	"github.com/fwojciec/llmstxt/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticFetcher returns canned HTML for every URL.
func staticFetcher(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

// passthroughCleaner derives page fields from the URL so assertions can
// tell pages apart.
func passthroughCleaner() *mock.Cleaner {
	return &mock.Cleaner{
		CleanFn: func(rawHTML, pageURL string) *llmstxt.PageContent {
			return &llmstxt.PageContent{
				Title:           llmstxt.TitleFromURL(pageURL),
				MetaDescription: "About " + pageURL,
				MainContent:     rawHTML,
			}
		},
	}
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("returns terminal message for no valid URLs", func(t *testing.T) {
		t.Parallel()

		g := &pipeline.Generator{
			Fetcher: staticFetcher(""),
			Cleaner: passthroughCleaner(),
		}

		for _, input := range [][]string{
			nil,
			{},
			{"not-a-url", "ftp://ex.com/file", "   "},
		} {
			doc, err := g.Generate(context.Background(), input, "", "")
			require.NoError(t, err)
			assert.Equal(t, "No valid URLs provided.", doc)
		}
	})

	t.Run("classifies URLs into sections", func(t *testing.T) {
		t.Parallel()

		g := &pipeline.Generator{
			Fetcher: staticFetcher("<html></html>"),
			Cleaner: passthroughCleaner(),
		}

		doc, err := g.Generate(context.Background(), []string{
			"https://ex.com/docs/api/foo",
			"https://ex.com/blog/bar",
		}, "", "")
		require.NoError(t, err)

		assert.Contains(t, doc, "## API Reference\n- [Foo](https://ex.com/docs/api/foo)")
		assert.Contains(t, doc, "## Other\n- [Bar](https://ex.com/blog/bar)")
		// Empty sections contribute nothing, not even a heading.
		assert.NotContains(t, doc, "## Guides")
		assert.NotContains(t, doc, "## Introduction")
	})

	t.Run("derives header from the first URL", func(t *testing.T) {
		t.Parallel()

		g := &pipeline.Generator{
			Fetcher: staticFetcher(""),
			Cleaner: passthroughCleaner(),
		}

		doc, err := g.Generate(context.Background(), []string{"https://ex.com/page"}, "", "")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(doc, "# Ex\n> Information about Ex\n\n"), doc)
	})

	t.Run("uses the supplied name and description", func(t *testing.T) {
		t.Parallel()

		g := &pipeline.Generator{
			Fetcher: staticFetcher(""),
			Cleaner: passthroughCleaner(),
		}

		doc, err := g.Generate(context.Background(), []string{"https://ex.com/page"}, "My Site", "All about widgets.")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(doc, "# My Site\n> All about widgets.\n"), doc)
	})

	t.Run("ends with a generation comment", func(t *testing.T) {
		t.Parallel()

		g := &pipeline.Generator{
			Fetcher: staticFetcher(""),
			Cleaner: passthroughCleaner(),
		}

		doc, err := g.Generate(context.Background(), []string{"https://ex.com/page"}, "", "")
		require.NoError(t, err)

		lines := strings.Split(doc, "\n")
		last := lines[len(lines)-1]
		assert.True(t, strings.HasPrefix(last, "<!-- Generated by LLMS.txt Generator on "), last)
		assert.True(t, strings.HasSuffix(last, " -->"), last)
	})

	t.Run("deduplicates URL variants", func(t *testing.T) {
		t.Parallel()

		var fetches atomic.Int64
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetches.Add(1)
				return "", nil
			},
			CloseFn: func() error { return nil },
		}

		g := &pipeline.Generator{
			Fetcher: fetcher,
			Cleaner: passthroughCleaner(),
		}

		_, err := g.Generate(context.Background(), []string{
			"https://ex.com/page",
			"https://ex.com/page?utm_source=x",
			"https://ex.com/page#section",
		}, "", "")
		require.NoError(t, err)

		assert.EqualValues(t, 1, fetches.Load())
	})

	t.Run("failed fetches degrade to URL-derived records", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("connection refused")
			},
			CloseFn: func() error { return nil },
		}

		g := &pipeline.Generator{
			Fetcher:  fetcher,
			Cleaner:  passthroughCleaner(),
			Sections: llmstxt.DefaultSections(),
		}

		doc, err := g.Generate(context.Background(), []string{"https://ex.com/docs/api/endpoints"}, "", "")
		require.NoError(t, err)

		assert.Contains(t, doc, "- [Endpoints](https://ex.com/docs/api/endpoints): API documentation")
	})

	t.Run("preserves submission order despite uneven completion", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				// Earlier URLs finish last.
				if strings.HasSuffix(url, "guide-a") {
					time.Sleep(50 * time.Millisecond)
				}
				return "", nil
			},
			CloseFn: func() error { return nil },
		}

		g := &pipeline.Generator{
			Fetcher: fetcher,
			Cleaner: passthroughCleaner(),
		}

		doc, err := g.Generate(context.Background(), []string{
			"https://ex.com/guides/guide-a",
			"https://ex.com/guides/guide-b",
			"https://ex.com/guides/guide-c",
		}, "", "")
		require.NoError(t, err)

		a := strings.Index(doc, "guide-a")
		b := strings.Index(doc, "guide-b")
		c := strings.Index(doc, "guide-c")
		assert.True(t, a < b && b < c, doc)
	})

	t.Run("caps each section at the per-section maximum", func(t *testing.T) {
		t.Parallel()

		var urls []string
		for i := 0; i < 15; i++ {
			urls = append(urls, fmt.Sprintf("https://ex.com/guides/guide-%02d", i))
		}
		// One extra URL in another section so the catch-all expansion does
		// not apply.
		urls = append(urls, "https://ex.com/blog/post")

		g := &pipeline.Generator{
			Fetcher: staticFetcher(""),
			Cleaner: passthroughCleaner(),
		}

		doc, err := g.Generate(context.Background(), urls, "", "")
		require.NoError(t, err)

		assert.Equal(t, 10, strings.Count(doc, "](https://ex.com/guides/"), doc)
	})

	t.Run("expands the catch-all cap when it is the only populated section", func(t *testing.T) {
		t.Parallel()

		var urls []string
		for i := 0; i < 25; i++ {
			urls = append(urls, fmt.Sprintf("https://ex.com/misc/item-%02d", i))
		}

		g := &pipeline.Generator{
			Fetcher: staticFetcher(""),
			Cleaner: passthroughCleaner(),
		}

		doc, err := g.Generate(context.Background(), urls, "", "")
		require.NoError(t, err)

		assert.Equal(t, 20, strings.Count(doc, "](https://ex.com/misc/"), doc)
	})

	t.Run("uses AI descriptions when content is long enough", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("Substantial page content. ", 10)

		summarizer := &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, content, title, url string) (string, error) {
				return "An AI-written description.", nil
			},
			ModelFn: func() string { return "test/model:free" },
		}

		g := &pipeline.Generator{
			Fetcher:    staticFetcher(long),
			Cleaner:    passthroughCleaner(),
			Summarizer: summarizer,
		}

		doc, err := g.Generate(context.Background(), []string{"https://ex.com/docs/thing"}, "", "")
		require.NoError(t, err)

		assert.Contains(t, doc, ": An AI-written description.")
		assert.Contains(t, doc, "AI descriptions (test/model:free)")
	})

	t.Run("skips summarization for thin content", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		summarizer := &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, content, title, url string) (string, error) {
				calls.Add(1)
				return "unused", nil
			},
		}

		g := &pipeline.Generator{
			Fetcher:    staticFetcher("tiny"),
			Cleaner:    passthroughCleaner(),
			Summarizer: summarizer,
		}

		_, err := g.Generate(context.Background(), []string{"https://ex.com/docs/thing"}, "", "")
		require.NoError(t, err)

		assert.EqualValues(t, 0, calls.Load())
	})

	t.Run("falls back to meta description when summarization fails", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("Substantial page content. ", 10)

		summarizer := &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, content, title, url string) (string, error) {
				return "", errors.New("model unavailable")
			},
		}

		g := &pipeline.Generator{
			Fetcher:    staticFetcher(long),
			Cleaner:    passthroughCleaner(),
			Summarizer: summarizer,
		}

		doc, err := g.Generate(context.Background(), []string{"https://ex.com/docs/thing"}, "", "")
		require.NoError(t, err)

		assert.Contains(t, doc, ": About https://ex.com/docs/thing")
	})

	t.Run("renders companion links for eligible sections", func(t *testing.T) {
		t.Parallel()

		locator := &mock.CompanionLocator{
			FindCompanionFn: func(ctx context.Context, pageURL string) (string, error) {
				if strings.Contains(pageURL, "/docs/") {
					return pageURL + ".md", nil
				}
				return "", nil
			},
		}

		g := &pipeline.Generator{
			Fetcher: staticFetcher(""),
			Cleaner: passthroughCleaner(),
			Locator: locator,
		}

		doc, err := g.Generate(context.Background(), []string{
			"https://ex.com/docs/api/page",
			"https://ex.com/blog/post",
		}, "", "")
		require.NoError(t, err)

		assert.Contains(t, doc, "([page.md](https://ex.com/docs/api/page.md))")
		// The catch-all section never probes for companions.
		assert.NotContains(t, doc, "post.md")
	})

	t.Run("reports progress per URL", func(t *testing.T) {
		t.Parallel()

		var events []llmstxt.Progress

		g := &pipeline.Generator{
			Fetcher:     staticFetcher(""),
			Cleaner:     passthroughCleaner(),
			Concurrency: 1,
			Progress: func(p llmstxt.Progress) {
				events = append(events, p)
			},
		}

		_, err := g.Generate(context.Background(), []string{
			"https://ex.com/docs/api/a",
			"https://ex.com/docs/api/b",
		}, "", "")
		require.NoError(t, err)

		require.Len(t, events, 2)
		assert.Equal(t, "API Reference", events[0].Section)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, 2, events[1].Completed)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", ctx.Err()
			},
			CloseFn: func() error { return nil },
		}

		g := &pipeline.Generator{
			Fetcher: fetcher,
			Cleaner: passthroughCleaner(),
		}

		_, err := g.Generate(ctx, []string{"https://ex.com/page"}, "", "")
		require.Error(t, err)
	})
}

func TestGenerator_GenerateFull(t *testing.T) {
	t.Parallel()

	t.Run("requires a converter", func(t *testing.T) {
		t.Parallel()

		g := &pipeline.Generator{
			Fetcher: staticFetcher(""),
			Cleaner: passthroughCleaner(),
		}

		_, err := g.GenerateFull(context.Background(), []string{"https://ex.com/page"}, "", "")
		require.Error(t, err)
		assert.Equal(t, llmstxt.EINVALID, llmstxt.ErrorCode(err))
	})

	t.Run("inlines page content and skips duplicates", func(t *testing.T) {
		t.Parallel()

		cleaner := &mock.Cleaner{
			CleanFn: func(rawHTML, pageURL string) *llmstxt.PageContent {
				content := "shared body"
				if strings.Contains(pageURL, "unique") {
					content = "unique body"
				}
				return &llmstxt.PageContent{
					Title:       llmstxt.TitleFromURL(pageURL),
					MainContent: content,
					ContentHTML: "<p>" + content + "</p>",
				}
			},
		}

		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return strings.TrimSuffix(strings.TrimPrefix(html, "<p>"), "</p>"), nil
			},
		}

		g := &pipeline.Generator{
			Fetcher:   staticFetcher("irrelevant"),
			Cleaner:   cleaner,
			Converter: converter,
		}

		doc, err := g.GenerateFull(context.Background(), []string{
			"https://ex.com/guides/first",
			"https://ex.com/guides/second",
			"https://ex.com/guides/unique",
		}, "", "")
		require.NoError(t, err)

		// first and second share a content hash; only one copy is kept.
		assert.Equal(t, 1, strings.Count(doc, "shared body"), doc)
		assert.Contains(t, doc, "unique body")
		assert.Contains(t, doc, "URL: https://ex.com/guides/first")
	})
}
