// Package gemini implements llmstxt.Summarizer using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/llmstxt"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// promptContentBudget limits how much page content goes into the prompt.
const promptContentBudget = 6000

// Ensure Summarizer implements llmstxt.Summarizer at compile time.
var _ llmstxt.Summarizer = (*Summarizer)(nil)

// Summarizer generates page descriptions using Google Gemini.
type Summarizer struct {
	client *genai.Client
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client *genai.Client) *Summarizer {
	return &Summarizer{client: client}
}

// Model returns the model identifier used for completions.
func (s *Summarizer) Model() string {
	return model
}

// Summarize asks Gemini for a one-to-two sentence description of the page
// content.
func (s *Summarizer) Summarize(ctx context.Context, content, title, url string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", llmstxt.Errorf(llmstxt.EINVALID, "empty content")
	}

	prompt := BuildUserPrompt(content, title, url)
	config := BuildConfig()

	result, err := s.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", llmstxt.Errorf(llmstxt.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	topP := float32(0.9)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You write concise one-to-two sentence descriptions of web pages. Focus on the main topic, purpose, and key information covered. Make the description useful for someone deciding whether to visit the page.",
			}},
		},
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: 200,
	}
}

// BuildUserPrompt builds the user prompt containing the page details.
func BuildUserPrompt(content, title, url string) string {
	var sb strings.Builder
	sb.WriteString("Describe the following web page.\n")
	if title != "" {
		fmt.Fprintf(&sb, "\nPage Title: %s", title)
	}
	if url != "" {
		fmt.Fprintf(&sb, "\nPage URL: %s", url)
	}

	runes := []rune(content)
	if len(runes) > promptContentBudget {
		content = string(runes[:promptContentBudget])
	}
	fmt.Fprintf(&sb, "\n\nPage Content:\n%s", content)

	return sb.String()
}
