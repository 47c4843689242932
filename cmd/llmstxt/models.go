package main

import (
	"fmt"

	"github.com/fwojciec/llmstxt/openrouter"
)

// Run executes the models command.
func (c *ModelsCmd) Run(deps *Dependencies) error {
	for _, provider := range openrouter.Catalog() {
		fmt.Fprintf(deps.Stdout, "%s:\n", provider.Name)
		for _, model := range provider.Models {
			marker := " "
			if model == openrouter.DefaultModel {
				marker = "*"
			}
			fmt.Fprintf(deps.Stdout, "  %s %-50s %s\n", marker, model, openrouter.ModelDisplayName(model))
		}
	}
	fmt.Fprintln(deps.Stdout, "\n* default")
	return nil
}
