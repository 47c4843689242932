package llmstxt

import "context"

// AgentStatus reports whether a robots.txt disallows a crawler agent.
type AgentStatus struct {
	Agent      string
	Disallowed bool
}

// KnownAgents lists automated-agent identifiers commonly used by AI
// crawlers, in report order.
func KnownAgents() []string {
	return []string{
		"GPTBot",
		"ChatGPT-User",
		"OAI-SearchBot",
		"ClaudeBot",
		"Claude-Web",
		"anthropic-ai",
		"Google-Extended",
		"PerplexityBot",
		"CCBot",
		"Bytespider",
		"cohere-ai",
		"Applebot-Extended",
	}
}

// RobotsChecker inspects a site's robots.txt for agent-level disallow rules.
type RobotsChecker interface {
	// Check fetches the robots.txt for the site at baseURL and reports,
	// for each agent, whether it is disallowed from the site root.
	Check(ctx context.Context, baseURL string, agents []string) ([]AgentStatus, error)
}
