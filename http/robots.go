package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/llmstxt"
)

// Ensure RobotsChecker implements llmstxt.RobotsChecker.
var _ llmstxt.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker fetches a site's robots.txt and reports which agents are
// disallowed from the site root.
type RobotsChecker struct {
	client *http.Client
}

// NewRobotsChecker creates a new RobotsChecker with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewRobotsChecker(client *http.Client) *RobotsChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return &RobotsChecker{client: client}
}

// Check fetches robots.txt for the site at baseURL and reports the disallow
// status for each agent. A missing robots.txt means nothing is disallowed.
func (c *RobotsChecker) Check(ctx context.Context, baseURL string, agents []string) ([]llmstxt.AgentStatus, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "invalid base URL: %v", err)
	}
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)

	statuses := make([]llmstxt.AgentStatus, len(agents))
	for i, agent := range agents {
		statuses[i] = llmstxt.AgentStatus{Agent: agent}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, llmstxt.Errorf(llmstxt.EUNAVAILABLE, "fetching robots.txt: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// No robots.txt: everything is allowed.
		return statuses, nil
	}

	groups := parseRobotsGroups(resp.Body)
	for i := range statuses {
		statuses[i].Disallowed = agentDisallowed(groups, statuses[i].Agent)
	}

	return statuses, nil
}

// robotsGroup is one User-agent block and whether it disallows the root.
type robotsGroup struct {
	agents         []string // lower-cased
	disallowedRoot bool
}

// parseRobotsGroups scans robots.txt into User-agent groups. Consecutive
// User-agent lines share one group; a group disallows the root when any of
// its Disallow lines is "/" or "/*".
func parseRobotsGroups(body io.Reader) []robotsGroup {
	var groups []robotsGroup
	var current *robotsGroup
	inAgentList := false

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "user-agent":
			if current == nil || !inAgentList {
				groups = append(groups, robotsGroup{})
				current = &groups[len(groups)-1]
			}
			current.agents = append(current.agents, strings.ToLower(value))
			inAgentList = true
		case "disallow":
			if current != nil && (value == "/" || value == "/*") {
				current.disallowedRoot = true
			}
			inAgentList = false
		default:
			inAgentList = false
		}
	}

	return groups
}

// agentDisallowed resolves the disallow status for one agent: a group that
// names the agent takes precedence over the "*" wildcard group.
func agentDisallowed(groups []robotsGroup, agent string) bool {
	lower := strings.ToLower(agent)

	var wildcard, hasWildcard bool
	for _, g := range groups {
		for _, name := range g.agents {
			if name == lower {
				return g.disallowedRoot
			}
			if name == "*" {
				hasWildcard = true
				wildcard = wildcard || g.disallowedRoot
			}
		}
	}

	return hasWildcard && wildcard
}
