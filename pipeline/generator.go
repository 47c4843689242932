// Package pipeline orchestrates llms.txt generation: classification of the
// input URLs into sections, bounded-concurrency page processing, and
// deterministic document assembly.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/bloom"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultConcurrency is the worker-pool size for plain HTTP fetching.
	DefaultConcurrency = 5

	// companionConcurrency caps workers when companion probing is enabled;
	// every page then costs an extra round of HEAD requests.
	companionConcurrency = 3

	// jsConcurrency caps workers when JS rendering is enabled; browser
	// pages are far more expensive than plain fetches.
	jsConcurrency = 2

	// DefaultMaxPerSection caps how many URLs a section processes.
	DefaultMaxPerSection = 10

	// catchAllMax is the cap for the catch-all section when it is the only
	// populated one, and for the fallback pass over all URLs.
	catchAllMax = 20

	// DefaultMinContentLength is the minimum main-content length worth
	// sending to a summarizer.
	DefaultMinContentLength = 100

	// fallbackSectionTitle heads the section produced by the fallback pass
	// when no section yields any records.
	fallbackSectionTitle = "General Information"
)

// Generator drives the generation pipeline. Fetcher and Cleaner are
// required; everything else is optional and enables a feature when set.
type Generator struct {
	Fetcher llmstxt.Fetcher
	Cleaner llmstxt.Cleaner

	// JSFetcher, when set, replaces Fetcher for page retrieval and lowers
	// the worker cap to jsConcurrency.
	JSFetcher llmstxt.Fetcher

	// Summarizer, when set, generates AI descriptions for pages with
	// enough main content.
	Summarizer llmstxt.Summarizer

	// Locator, when set, probes for companion Markdown documents on
	// sections that allow them.
	Locator llmstxt.CompanionLocator

	// Converter, when set, captures each page's main content as Markdown
	// for full-content output.
	Converter llmstxt.Converter

	// Limiter, when set, paces requests per domain.
	Limiter llmstxt.DomainLimiter

	// Sections overrides the default section configuration.
	Sections []llmstxt.Section

	Logger           *slog.Logger
	Concurrency      int
	MaxPerSection    int
	MinContentLength int
	Progress         llmstxt.ProgressFunc
}

// result holds the outcome of processing a single URL. The position index
// preserves submission order during assembly.
type result struct {
	position int
	record   llmstxt.PageRecord
	err      error
}

// sectionRecords pairs a section with the records its batch produced.
type sectionRecords struct {
	section llmstxt.Section
	records []llmstxt.PageRecord
}

// Generate runs the pipeline over urls and returns the llms.txt document.
// Individual page failures degrade to URL-derived records; Generate fails
// only on context cancellation.
func (g *Generator) Generate(ctx context.Context, urls []string, siteName, siteDescription string) (string, error) {
	run, err := g.run(ctx, urls, siteName, siteDescription)
	if err != nil {
		return "", err
	}
	if run == nil {
		return llmstxt.NoURLsMessage, nil
	}

	var sb strings.Builder
	sb.WriteString(llmstxt.FormatHeader(run.siteName, run.siteDescription))
	sb.WriteString("\n")

	for _, sr := range run.sections {
		if len(sr.records) == 0 {
			continue
		}
		sb.WriteString("## " + sr.section.Title + "\n")
		for _, rec := range sr.records {
			sb.WriteString(llmstxt.FormatRecord(rec) + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(llmstxt.FormatFooter(time.Now(), g.JSFetcher != nil, g.modelName()))
	return sb.String(), nil
}

// GenerateFull runs the pipeline over urls and returns the llms-full.txt
// document: the same header and footer, with each page's full Markdown
// content inlined. Pages whose content hashes to an already-seen value are
// skipped as duplicates. Requires Converter to be set.
func (g *Generator) GenerateFull(ctx context.Context, urls []string, siteName, siteDescription string) (string, error) {
	if g.Converter == nil {
		return "", llmstxt.Errorf(llmstxt.EINVALID, "full-content output requires a converter")
	}

	run, err := g.run(ctx, urls, siteName, siteDescription)
	if err != nil {
		return "", err
	}
	if run == nil {
		return llmstxt.NoURLsMessage, nil
	}

	var sb strings.Builder
	sb.WriteString(llmstxt.FormatHeader(run.siteName, run.siteDescription))
	sb.WriteString("\n")

	seen := make(map[string]bool)
	for _, sr := range run.sections {
		for _, rec := range sr.records {
			if rec.Content == "" {
				continue
			}
			if rec.ContentHash != "" && seen[rec.ContentHash] {
				continue
			}
			seen[rec.ContentHash] = true
			sb.WriteString("## " + rec.Title + "\n\n")
			sb.WriteString("URL: " + rec.URL + "\n\n")
			sb.WriteString(strings.TrimSpace(rec.Content) + "\n\n")
		}
	}

	sb.WriteString(llmstxt.FormatFooter(time.Now(), g.JSFetcher != nil, g.modelName()))
	return sb.String(), nil
}

// runState holds the processed output of one pipeline run.
type runState struct {
	siteName        string
	siteDescription string
	sections        []sectionRecords
}

// run validates and classifies the input, processes every section batch,
// and applies the fallback pass. A nil runState means no valid URLs.
func (g *Generator) run(ctx context.Context, urls []string, siteName, siteDescription string) (*runState, error) {
	logger := g.logger().With("run_id", uuid.NewString())

	valid := dedupe(urls)
	if len(valid) == 0 {
		logger.Info("no valid URLs in input", "raw_count", len(urls))
		return nil, nil
	}

	if siteName == "" {
		siteName = llmstxt.SiteNameFromURL(valid[0])
	}
	if siteDescription == "" {
		siteDescription = fmt.Sprintf("Information about %s", siteName)
	}

	sections := g.Sections
	if len(sections) == 0 {
		sections = llmstxt.DefaultSections()
	}
	buckets := llmstxt.Classify(valid, sections)

	batches := g.planBatches(sections, buckets)

	var total int
	for _, b := range batches {
		total += len(b.urls)
	}
	logger.Info("generation started",
		"urls", len(valid),
		"batches", len(batches),
		"total", total,
	)

	var completed atomic.Int64
	out := make([]sectionRecords, 0, len(batches))
	var produced int
	for _, b := range batches {
		records, err := g.processBatch(ctx, b.section, b.urls, &completed, total, g.Locator != nil && b.section.Companion)
		if err != nil {
			return nil, err
		}
		produced += len(records)
		out = append(out, sectionRecords{section: b.section, records: records})
	}

	// A run that produced nothing gets one more chance: all URLs, one
	// generic section, no companion probing.
	if produced == 0 {
		logger.Info("no records produced, running fallback pass")
		fallback := llmstxt.Section{
			Title:              fallbackSectionTitle,
			DefaultDescription: llmstxt.DefaultDescription,
		}
		capped := valid
		if len(capped) > catchAllMax {
			capped = capped[:catchAllMax]
		}
		var fc atomic.Int64
		records, err := g.processBatch(ctx, fallback, capped, &fc, len(capped), false)
		if err != nil {
			return nil, err
		}
		out = []sectionRecords{{section: fallback, records: records}}
	}

	logger.Info("generation finished", "records", recordCount(out))

	return &runState{
		siteName:        siteName,
		siteDescription: siteDescription,
		sections:        out,
	}, nil
}

// batch is one section's capped URL list.
type batch struct {
	section llmstxt.Section
	urls    []string
}

// planBatches caps each populated section's URLs. The catch-all section may
// take up to catchAllMax URLs when it is the only populated section.
func (g *Generator) planBatches(sections []llmstxt.Section, buckets map[string][]string) []batch {
	maxPer := g.MaxPerSection
	if maxPer <= 0 {
		maxPer = DefaultMaxPerSection
	}

	var populated int
	for _, section := range sections {
		if len(buckets[section.Title]) > 0 {
			populated++
		}
	}

	var batches []batch
	for _, section := range sections {
		urls := buckets[section.Title]
		if len(urls) == 0 {
			continue
		}
		limit := maxPer
		if section.IsCatchAll() && populated == 1 {
			limit = catchAllMax
		}
		if len(urls) > limit {
			urls = urls[:limit]
		}
		batches = append(batches, batch{section: section, urls: urls})
	}
	return batches
}

// processBatch runs one section's URLs through the worker pool. Results
// keep submission order regardless of completion order.
func (g *Generator) processBatch(ctx context.Context, section llmstxt.Section, urls []string, completed *atomic.Int64, total int, probeCompanion bool) ([]llmstxt.PageRecord, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	results := make([]result, len(urls))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers())

	for i, url := range urls {
		eg.Go(func() error {
			rec, err := g.processURL(gctx, section, url, probeCompanion)
			results[i] = result{position: i, record: rec, err: err}

			if g.Progress != nil {
				g.Progress(llmstxt.Progress{
					Section:   section.Title,
					URL:       url,
					Completed: int(completed.Add(1)),
					Total:     total,
					Err:       err,
				})
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]llmstxt.PageRecord, 0, len(results))
	for _, r := range results {
		records = append(records, r.record)
	}
	return records, nil
}

// processURL runs one URL through fetch, clean, describe, and companion
// probing. Failures degrade to a URL-derived record; the returned error is
// informational and reported through Progress only.
func (g *Generator) processURL(ctx context.Context, section llmstxt.Section, url string, probeCompanion bool) (llmstxt.PageRecord, error) {
	logger := g.logger()

	sectionDefault := section.DefaultDescription
	if sectionDefault == "" {
		sectionDefault = llmstxt.DefaultDescription
	}

	if g.Limiter != nil {
		if err := g.Limiter.Wait(ctx, llmstxt.Domain(url)); err != nil {
			return llmstxt.PageRecord{
				Title:       llmstxt.TitleFromURL(url),
				Description: sectionDefault,
				URL:         url,
			}, err
		}
	}

	html, err := g.fetcher().Fetch(ctx, url)
	if err != nil {
		logger.Warn("fetch failed", "url", url, "err", err)
		return llmstxt.PageRecord{
			Title:       llmstxt.TitleFromURL(url),
			Description: sectionDefault,
			URL:         url,
		}, err
	}

	pc := g.Cleaner.Clean(html, url)

	var summary string
	if g.Summarizer != nil && len(pc.MainContent) >= g.minContentLength() {
		summary, err = g.Summarizer.Summarize(ctx, pc.MainContent, pc.Title, url)
		if err != nil {
			logger.Warn("summarization failed", "url", url, "err", err)
			summary = ""
		}
	}

	rec := llmstxt.PageRecord{
		Title:       pc.Title,
		Description: llmstxt.ResolveDescription(summary, pc.MetaDescription, pc.MainContent, sectionDefault),
		URL:         url,
	}
	if rec.Title == "" {
		rec.Title = llmstxt.TitleFromURL(url)
	}
	if pc.MainContent != "" {
		rec.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64String(pc.MainContent))
	}

	if probeCompanion {
		companion, err := g.Locator.FindCompanion(ctx, url)
		if err != nil {
			return rec, err
		}
		rec.CompanionURL = companion
	}

	if g.Converter != nil && pc.ContentHTML != "" {
		if md, err := g.Converter.Convert(pc.ContentHTML); err == nil {
			rec.Content = md
		}
	}

	return rec, nil
}

// dedupe keeps the first occurrence of each valid, normalized URL.
func dedupe(urls []string) []string {
	seen := bloom.NewFilter(uint(len(urls))+1, 0.001)
	var out []string
	for _, raw := range urls {
		trimmed := strings.TrimSpace(raw)
		if !llmstxt.IsValidURL(trimmed) {
			continue
		}
		norm := llmstxt.NormalizeURL(trimmed)
		if seen.TestAndAdd(norm) {
			continue
		}
		out = append(out, norm)
	}
	return out
}

func (g *Generator) fetcher() llmstxt.Fetcher {
	if g.JSFetcher != nil {
		return g.JSFetcher
	}
	return g.Fetcher
}

// workers returns the effective worker-pool size. JS rendering and
// companion probing lower the cap; browser pages and extra HEAD probes make
// each unit more expensive.
func (g *Generator) workers() int {
	n := g.Concurrency
	if n <= 0 {
		n = DefaultConcurrency
	}
	if g.Locator != nil && n > companionConcurrency {
		n = companionConcurrency
	}
	if g.JSFetcher != nil && n > jsConcurrency {
		n = jsConcurrency
	}
	return n
}

func (g *Generator) minContentLength() int {
	if g.MinContentLength > 0 {
		return g.MinContentLength
	}
	return DefaultMinContentLength
}

func (g *Generator) modelName() string {
	if g.Summarizer == nil {
		return ""
	}
	return g.Summarizer.Model()
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func recordCount(sections []sectionRecords) int {
	var n int
	for _, sr := range sections {
		n += len(sr.records)
	}
	return n
}
