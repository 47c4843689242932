package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Generator *pipeline.Generator
	Source    llmstxt.URLSource
	Robots    llmstxt.RobotsChecker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Generate GenerateCmd `cmd:"" help:"Generate an llms.txt document from a URL source"`
	Robots   RobotsCmd   `cmd:"" help:"Check which AI agents a site's robots.txt blocks"`
	Models   ModelsCmd   `cmd:"" help:"List the available description models"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	Source      string `arg:"" help:"URL source: sitemap URL, CSV file, URL-list file, or a single page URL"`
	Name        string `arg:"" optional:"" help:"Site name (derived from the first URL if omitted)"`
	Description string `short:"d" help:"Site description for the document header"`

	JS           bool          `help:"Render pages with a headless browser"`
	AI           bool          `help:"Generate descriptions with a language model"`
	Provider     string        `default:"openrouter" enum:"openrouter,gemini" help:"Description model provider"`
	Model        string        `default:"deepseek/deepseek-r1-0528:free" help:"Model for OpenRouter descriptions"`
	APIKey       string        `env:"OPENROUTER_API_KEY" help:"OpenRouter API key"`
	GeminiAPIKey string        `env:"GEMINI_API_KEY" help:"Gemini API key"`
	Full         bool          `help:"Produce llms-full.txt with inlined page content"`
	Output       string        `short:"o" help:"Write the document to a file instead of stdout"`
	Concurrency  int           `short:"c" default:"5" help:"Concurrent fetch limit"`
	Timeout      time.Duration `default:"10s" help:"Per-page fetch timeout"`
	RPS          float64       `default:"2" help:"Max requests per second per domain"`

	MaxPerSection int  `default:"10" help:"Max URLs processed per section"`
	NoCompanion   bool `help:"Skip probing for companion .md documents"`
}

// RobotsCmd is the "robots" subcommand.
type RobotsCmd struct {
	URL string `arg:"" help:"Site URL whose robots.txt to check"`
}

// ModelsCmd is the "models" subcommand.
type ModelsCmd struct{}
