package mock

import (
	"context"

	"github.com/fwojciec/llmstxt"
)

var _ llmstxt.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker is a mock implementation of llmstxt.RobotsChecker.
type RobotsChecker struct {
	CheckFn func(ctx context.Context, baseURL string, agents []string) ([]llmstxt.AgentStatus, error)
}

func (c *RobotsChecker) Check(ctx context.Context, baseURL string, agents []string) ([]llmstxt.AgentStatus, error) {
	return c.CheckFn(ctx, baseURL, agents)
}
