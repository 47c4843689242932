// Package openrouter implements llmstxt.Summarizer on top of the
// OpenRouter chat completions API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/llmstxt"
)

// DefaultBaseURL is the OpenRouter API endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// DefaultTimeout bounds a single completion request.
const DefaultTimeout = 30 * time.Second

// maxTokens caps the completion length. A page description is one or two
// sentences, so the budget is small.
const maxTokens = 200

// promptContentBudget limits how much page content goes into the prompt to
// stay clear of model context limits.
const promptContentBudget = 6000

// Attribution headers OpenRouter uses for app rankings.
const (
	appReferer = "https://github.com/fwojciec/llmstxt"
	appTitle   = "LLMS.txt Generator"
)

// Ensure Summarizer implements llmstxt.Summarizer at compile time.
var _ llmstxt.Summarizer = (*Summarizer)(nil)

// Summarizer generates page descriptions via OpenRouter-hosted models.
type Summarizer struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(s *Summarizer) {
		s.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithModel sets the model used for completions. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(s *Summarizer) {
		s.model = model
	}
}

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Summarizer) {
		s.client.Timeout = d
	}
}

// NewSummarizer creates a Summarizer authenticated with apiKey.
func NewSummarizer(apiKey string, opts ...Option) *Summarizer {
	s := &Summarizer{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		model:   DefaultModel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Model returns the model identifier used for completions.
func (s *Summarizer) Model() string {
	return s.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize asks the configured model for a one-to-two sentence description
// of the page content.
func (s *Summarizer) Summarize(ctx context.Context, content, title, url string) (string, error) {
	if s.apiKey == "" {
		return "", llmstxt.Errorf(llmstxt.EINVALID, "OpenRouter API key required")
	}
	if strings.TrimSpace(content) == "" {
		return "", llmstxt.Errorf(llmstxt.EINVALID, "empty content")
	}
	if !ValidateModel(s.model) {
		return "", llmstxt.Errorf(llmstxt.EINVALID, "invalid model name: %q", s.model)
	}

	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: BuildPrompt(content, title, url)},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
		TopP:        0.9,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", appReferer)
	req.Header.Set("X-Title", appTitle)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", llmstxt.Errorf(llmstxt.EUNAVAILABLE, "calling OpenRouter: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", llmstxt.Errorf(llmstxt.EUNAVAILABLE, "OpenRouter returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", llmstxt.Errorf(llmstxt.EINTERNAL, "decoding OpenRouter response: %v", err)
	}
	if len(parsed.Choices) == 0 {
		return "", llmstxt.Errorf(llmstxt.EINTERNAL, "OpenRouter response has no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// BuildPrompt assembles the description prompt sent to the model.
func BuildPrompt(content, title, url string) string {
	var sb strings.Builder
	sb.WriteString("Please analyze the following web page content and generate a concise, informative description (1-2 sentences) that summarizes what this page is about.\n")
	sb.WriteString("Focus on the main topic, purpose, and key information covered.\n")
	sb.WriteString("Make the description useful for someone deciding whether to visit this page.")

	if title != "" {
		fmt.Fprintf(&sb, "\n\nPage Title: %s", title)
	}
	if url != "" {
		fmt.Fprintf(&sb, "\nPage URL: %s", url)
	}

	runes := []rune(content)
	if len(runes) > promptContentBudget {
		content = string(runes[:promptContentBudget])
	}
	fmt.Fprintf(&sb, "\n\nPage Content:\n%s", content)
	sb.WriteString("\n\nGenerate a description:")

	return sb.String()
}
