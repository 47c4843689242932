package openrouter

import (
	"regexp"
	"strings"
)

// DefaultModel is the model used when none is configured. It is the first
// free option in the catalog.
const DefaultModel = "deepseek/deepseek-r1-0528:free"

// ModelProvider groups the models offered by one upstream provider.
type ModelProvider struct {
	Name   string
	Models []string
}

// Catalog returns the curated model catalog in display order.
func Catalog() []ModelProvider {
	return []ModelProvider{
		{Name: "Deepseek", Models: []string{
			"deepseek/deepseek-r1-0528",
			"deepseek/deepseek-prover-v2",
			"deepseek/deepseek-r1-0528:free",
			"deepseek/deepseek-prover-v2:free",
		}},
		{Name: "OpenAI", Models: []string{
			"openai/gpt-4.1",
			"openai/gpt-4.1-mini",
			"openai/gpt-4.1-nano",
			"openai/chatgpt-4o-latest",
			"openai/gpt-4o-mini",
			"openai/o1-preview",
			"openai/o1-mini",
		}},
		{Name: "Claude", Models: []string{
			"anthropic/claude-opus-4",
			"anthropic/claude-sonnet-4",
			"anthropic/claude-3.7-sonnet",
			"anthropic/claude-3.7-sonnet:thinking",
			"anthropic/claude-3.5-haiku",
			"anthropic/claude-3.5-sonnet",
		}},
		{Name: "Gemini", Models: []string{
			"google/gemini-2.5-flash-preview-05-20",
			"google/gemini-2.5-flash-preview-05-20:thinking",
			"google/gemini-2.5-pro-preview",
			"google/gemma-3-27b-it",
		}},
		{Name: "xAI", Models: []string{
			"x-ai/grok-3-mini-beta",
			"x-ai/grok-3-beta",
		}},
		{Name: "Qwen", Models: []string{
			"qwen/qwen2.5-vl-32b-instruct",
		}},
	}
}

// Models returns the flattened catalog in display order.
func Models() []string {
	var models []string
	for _, provider := range Catalog() {
		models = append(models, provider.Models...)
	}
	return models
}

// modelRe matches provider/model-name with an optional :variant suffix.
var modelRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+/[a-zA-Z0-9._-]+(?::[a-zA-Z0-9._-]+)?$`)

// ValidateModel reports whether a model identifier is well formed. Custom
// models outside the catalog are accepted as long as they follow the
// provider/model naming scheme.
func ValidateModel(model string) bool {
	return modelRe.MatchString(strings.TrimSpace(model))
}

// ModelDisplayName returns a user-friendly name for a model identifier.
func ModelDisplayName(model string) string {
	if model == "" {
		return "Unknown Model"
	}

	parts := strings.SplitN(model, "/", 2)
	if len(parts) < 2 {
		return model
	}

	name := parts[1]
	switch {
	case strings.HasSuffix(name, ":free"):
		return strings.TrimSuffix(name, ":free") + " (Free)"
	case strings.Contains(name, ":thinking"):
		return strings.ReplaceAll(name, ":thinking", "") + " (Thinking)"
	}
	return name
}
