package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/csv"
	"github.com/fwojciec/llmstxt/gemini"
	"github.com/fwojciec/llmstxt/goquery"
	llmshttp "github.com/fwojciec/llmstxt/http"
	"github.com/fwojciec/llmstxt/htmltomarkdown"
	"github.com/fwojciec/llmstxt/openrouter"
	"github.com/fwojciec/llmstxt/pipeline"
	"github.com/fwojciec/llmstxt/rod"
	llmsslog "github.com/fwojciec/llmstxt/slog"
	"github.com/fwojciec/llmstxt/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Generator and services, exposed for end-to-end testing. When nil,
	// Run wires production implementations.
	Generator *pipeline.Generator
	Source    llmstxt.URLSource
	Robots    llmstxt.RobotsChecker

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases resources acquired during Run.
func (m *Main) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("llmstxt"),
		kong.Description("Generate llms.txt documents from a site's pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'llmstxt --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cmd == "generate" {
		if err := m.wireGenerate(cli, deps); err != nil {
			return err
		}
		defer m.Close()
	}

	if m.Robots == nil {
		m.Robots = llmshttp.NewRobotsChecker(nil)
	}
	deps.Robots = m.Robots

	return kongCtx.Run(deps)
}

// wireGenerate assembles the generation pipeline from the parsed flags.
func (m *Main) wireGenerate(cli *CLI, deps *Dependencies) error {
	logger := deps.Logger
	c := cli.Generate

	if m.Source == nil {
		m.Source = resolveSource(c.Source)
	}
	deps.Source = llmsslog.NewLoggingURLSource(m.Source, logger)

	if m.Generator == nil {
		fetcher := llmshttp.NewFetcher(llmshttp.WithTimeout(c.Timeout))

		var jsFetcher llmstxt.Fetcher
		if c.JS {
			rodFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --js")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			m.closers = append(m.closers, rodFetcher)
			jsFetcher = rod.NewLoggingFetcher(rodFetcher, logger)
		}

		var summarizer llmstxt.Summarizer
		if c.AI {
			switch c.Provider {
			case "gemini":
				if c.GeminiAPIKey == "" {
					return llmstxt.Errorf(llmstxt.EINVALID, "Gemini API key required for --provider gemini (set GEMINI_API_KEY)")
				}
				client, err := genai.NewClient(deps.Ctx, &genai.ClientConfig{
					APIKey:  c.GeminiAPIKey,
					Backend: genai.BackendGeminiAPI,
				})
				if err != nil {
					fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
					return fmt.Errorf("failed to connect to Gemini API: %w", err)
				}
				summarizer = llmsslog.NewLoggingSummarizer(gemini.NewSummarizer(client), logger)
			default:
				if c.APIKey == "" {
					return llmstxt.Errorf(llmstxt.EINVALID, "OpenRouter API key required for --ai (set OPENROUTER_API_KEY)")
				}
				if !openrouter.ValidateModel(c.Model) {
					return llmstxt.Errorf(llmstxt.EINVALID, "invalid model name %q, run 'llmstxt models' for options", c.Model)
				}
				summarizer = llmsslog.NewLoggingSummarizer(
					openrouter.NewSummarizer(c.APIKey, openrouter.WithModel(c.Model)),
					logger,
				)
			}
		}

		var locator llmstxt.CompanionLocator
		if !c.NoCompanion {
			locator = llmsslog.NewLoggingCompanionLocator(llmshttp.NewCompanionLocator(), logger)
		}

		var converter llmstxt.Converter
		if c.Full {
			converter = htmltomarkdown.NewConverter()
		}

		m.Generator = &pipeline.Generator{
			Fetcher:       fetcher,
			JSFetcher:     jsFetcher,
			Cleaner:       goquery.NewCleaner(trafilatura.NewExtractor()),
			Summarizer:    summarizer,
			Locator:       locator,
			Converter:     converter,
			Limiter:       pipeline.NewDomainLimiter(c.RPS),
			Logger:        logger,
			Concurrency:   c.Concurrency,
			MaxPerSection: c.MaxPerSection,
		}
	}
	m.Generator.Progress = func(p llmstxt.Progress) {
		status := "ok"
		if p.Err != nil {
			status = "degraded"
		}
		fmt.Fprintf(deps.Stderr, "[%d/%d] %s (%s, %s)\n", p.Completed, p.Total, p.URL, p.Section, status)
	}
	deps.Generator = m.Generator

	return nil
}

// resolveSource picks a URL source implementation from the shape of the
// source argument.
func resolveSource(source string) llmstxt.URLSource {
	switch {
	case strings.HasSuffix(strings.ToLower(source), ".csv"):
		return csv.NewSource()
	case isSitemapURL(source):
		return llmshttp.NewSitemapSource(nil)
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return singleURLSource{}
	default:
		return fileSource{}
	}
}

func isSitemapURL(source string) bool {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return false
	}
	lower := strings.ToLower(source)
	return strings.HasSuffix(lower, ".xml") || strings.Contains(lower, "sitemap")
}

// singleURLSource treats the source argument as the one page to index.
type singleURLSource struct{}

func (singleURLSource) URLs(_ context.Context, source string) ([]string, error) {
	return []string{source}, nil
}

// fileSource reads whitespace-separated URLs from a local file.
type fileSource struct{}

func (fileSource) URLs(_ context.Context, source string) ([]string, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "reading URL list: %v", err)
	}
	return strings.Fields(string(data)), nil
}
