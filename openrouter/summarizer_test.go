package openrouter_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/openrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("returns the model's description", func(t *testing.T) {
		t.Parallel()

		server := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "LLMS.txt Generator", r.Header.Get("X-Title"))
			assert.NotEmpty(t, r.Header.Get("HTTP-Referer"))

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, openrouter.DefaultModel, req["model"])
			assert.Equal(t, float64(200), req["max_tokens"])
			assert.Equal(t, 0.3, req["temperature"])
			assert.Equal(t, 0.9, req["top_p"])

			fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"  A guide to widgets.  "}}]}`)
		})

		s := openrouter.NewSummarizer("test-key", openrouter.WithBaseURL(server.URL))

		desc, err := s.Summarize(context.Background(), "Widget docs content", "Widgets", "https://ex.com/widgets")
		require.NoError(t, err)
		assert.Equal(t, "A guide to widgets.", desc)
	})

	t.Run("requires an API key", func(t *testing.T) {
		t.Parallel()

		s := openrouter.NewSummarizer("")

		_, err := s.Summarize(context.Background(), "content", "", "")
		require.Error(t, err)
		assert.Equal(t, llmstxt.EINVALID, llmstxt.ErrorCode(err))
	})

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()

		s := openrouter.NewSummarizer("test-key")

		_, err := s.Summarize(context.Background(), "   ", "", "")
		require.Error(t, err)
		assert.Equal(t, llmstxt.EINVALID, llmstxt.ErrorCode(err))
	})

	t.Run("rejects a malformed model name", func(t *testing.T) {
		t.Parallel()

		s := openrouter.NewSummarizer("test-key", openrouter.WithModel("no-slash-here"))

		_, err := s.Summarize(context.Background(), "content", "", "")
		require.Error(t, err)
		assert.Equal(t, llmstxt.EINVALID, llmstxt.ErrorCode(err))
	})

	t.Run("maps API errors to unavailable", func(t *testing.T) {
		t.Parallel()

		server := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		s := openrouter.NewSummarizer("test-key", openrouter.WithBaseURL(server.URL))

		_, err := s.Summarize(context.Background(), "content", "", "")
		require.Error(t, err)
		assert.Equal(t, llmstxt.EUNAVAILABLE, llmstxt.ErrorCode(err))
	})

	t.Run("errors when the response has no choices", func(t *testing.T) {
		t.Parallel()

		server := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices":[]}`)
		})

		s := openrouter.NewSummarizer("test-key", openrouter.WithBaseURL(server.URL))

		_, err := s.Summarize(context.Background(), "content", "", "")
		require.Error(t, err)
		assert.Equal(t, llmstxt.EINTERNAL, llmstxt.ErrorCode(err))
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	t.Run("includes title, url, and content", func(t *testing.T) {
		t.Parallel()

		prompt := openrouter.BuildPrompt("Body text", "My Page", "https://ex.com/page")

		assert.Contains(t, prompt, "Page Title: My Page")
		assert.Contains(t, prompt, "Page URL: https://ex.com/page")
		assert.Contains(t, prompt, "Body text")
		assert.True(t, strings.HasSuffix(prompt, "Generate a description:"))
	})

	t.Run("omits empty title and url", func(t *testing.T) {
		t.Parallel()

		prompt := openrouter.BuildPrompt("Body text", "", "")

		assert.NotContains(t, prompt, "Page Title:")
		assert.NotContains(t, prompt, "Page URL:")
	})

	t.Run("truncates oversized content", func(t *testing.T) {
		t.Parallel()

		prompt := openrouter.BuildPrompt(strings.Repeat("x", 10000), "", "")

		assert.Less(t, len(prompt), 7000)
	})
}

func TestValidateModel(t *testing.T) {
	t.Parallel()

	valid := []string{
		"deepseek/deepseek-r1-0528:free",
		"anthropic/claude-3.5-sonnet",
		"openai/gpt-4.1",
		"x-ai/grok-3-beta",
	}
	for _, m := range valid {
		assert.True(t, openrouter.ValidateModel(m), m)
	}

	invalid := []string{
		"",
		"noslash",
		"too/many/slashes",
		"spaces in/model",
		"provider/",
	}
	for _, m := range invalid {
		assert.False(t, openrouter.ValidateModel(m), m)
	}
}

func TestModelDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "deepseek-r1-0528 (Free)", openrouter.ModelDisplayName("deepseek/deepseek-r1-0528:free"))
	assert.Equal(t, "claude-3.7-sonnet (Thinking)", openrouter.ModelDisplayName("anthropic/claude-3.7-sonnet:thinking"))
	assert.Equal(t, "gpt-4.1", openrouter.ModelDisplayName("openai/gpt-4.1"))
	assert.Equal(t, "Unknown Model", openrouter.ModelDisplayName(""))
	assert.Equal(t, "bare-name", openrouter.ModelDisplayName("bare-name"))
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	models := openrouter.Models()
	assert.Contains(t, models, openrouter.DefaultModel)

	for _, m := range models {
		assert.True(t, openrouter.ValidateModel(m), m)
	}
}
