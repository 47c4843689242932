package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	llmshttp "github.com/fwojciec/llmstxt/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pageURL string
		want    []string
	}{
		{
			name:    "html extension is swapped for md",
			pageURL: "https://ex.com/docs/page.html",
			want:    []string{"https://ex.com/docs/page.md"},
		},
		{
			name:    "php extension is swapped for md",
			pageURL: "https://ex.com/docs/page.php",
			want:    []string{"https://ex.com/docs/page.md"},
		},
		{
			name:    "trailing slash probes nested name first",
			pageURL: "https://ex.com/docs/dir/",
			want: []string{
				"https://ex.com/docs/dir/dir.md",
				"https://ex.com/docs/dir.md",
			},
		},
		{
			name:    "bare path appends md",
			pageURL: "https://ex.com/docs/main",
			want:    []string{"https://ex.com/docs/main.md"},
		},
		{
			name:    "root URL probes index",
			pageURL: "https://ex.com/",
			want:    []string{"https://ex.com/index.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := url.Parse(tt.pageURL)
			require.NoError(t, err)

			assert.Equal(t, tt.want, llmshttp.CandidatePaths(parsed))
		})
	}
}

func TestCompanionLocator_FindCompanion(t *testing.T) {
	t.Parallel()

	t.Run("finds a live md twin", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead && r.URL.Path == "/docs/feature.md" {
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		locator := llmshttp.NewCompanionLocator()

		got, err := locator.FindCompanion(context.Background(), server.URL+"/docs/feature.html")
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/docs/feature.md", got)
	})

	t.Run("falls through trailing-slash candidates", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/docs/dir.md" {
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		locator := llmshttp.NewCompanionLocator()

		got, err := locator.FindCompanion(context.Background(), server.URL+"/docs/dir/")
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/docs/dir.md", got)
	})

	t.Run("returns empty when no candidate exists", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		locator := llmshttp.NewCompanionLocator()

		got, err := locator.FindCompanion(context.Background(), server.URL+"/docs/no-such-file.html")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("rejects a 200 whose final URL does not end in md", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/docs/redirect-test.md" {
				http.Redirect(w, r, "/index.html", http.StatusMovedPermanently)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		locator := llmshttp.NewCompanionLocator()

		got, err := locator.FindCompanion(context.Background(), server.URL+"/docs/redirect-test.html")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("treats a timeout as not found", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		locator := llmshttp.NewCompanionLocator(llmshttp.WithProbeTimeout(20 * time.Millisecond))

		got, err := locator.FindCompanion(context.Background(), server.URL+"/docs/timeout.html")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ignores non-http URLs", func(t *testing.T) {
		t.Parallel()

		locator := llmshttp.NewCompanionLocator()

		got, err := locator.FindCompanion(context.Background(), "ftp://example.com/docs/feature.html")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
