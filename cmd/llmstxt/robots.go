package main

import (
	"fmt"

	"github.com/fwojciec/llmstxt"
)

// Run executes the robots command.
func (c *RobotsCmd) Run(deps *Dependencies) error {
	statuses, err := deps.Robots.Check(deps.Ctx, c.URL, llmstxt.KnownAgents())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmstxt.ErrorMessage(err))
		return err
	}

	var blocked int
	for _, s := range statuses {
		state := "allowed"
		if s.Disallowed {
			state = "blocked"
			blocked++
		}
		fmt.Fprintf(deps.Stdout, "%-20s %s\n", s.Agent, state)
	}

	fmt.Fprintf(deps.Stdout, "\n%d of %d known AI agents blocked\n", blocked, len(statuses))
	return nil
}
