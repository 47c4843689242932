package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/llmstxt"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	urls, err := deps.Source.URLs(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmstxt.ErrorMessage(err))
		return err
	}

	var doc string
	if c.Full {
		doc, err = deps.Generator.GenerateFull(deps.Ctx, urls, c.Name, c.Description)
	} else {
		doc, err = deps.Generator.Generate(deps.Ctx, urls, c.Name, c.Description)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmstxt.ErrorMessage(err))
		return err
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(doc+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", c.Output, err)
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Output)
		return nil
	}

	fmt.Fprintln(deps.Stdout, doc)
	return nil
}
