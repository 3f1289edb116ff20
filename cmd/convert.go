// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// fetch → extract (opt-in) → normalize → render → write.
//
// It handles flag validation, renderer selection, and the --only / --all
// modes. An argument naming an existing file is read from disk instead
// of fetched.
package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/calder-ross/pagemd/core"
	"github.com/calder-ross/pagemd/core/extract"
	"github.com/calder-ross/pagemd/core/fetch"
	"github.com/calder-ross/pagemd/core/normalize"
	"github.com/calder-ross/pagemd/core/output"
	"github.com/calder-ross/pagemd/core/render"
	"github.com/calder-ross/pagemd/crawl"
	"github.com/calder-ross/pagemd/internal/config"
	"github.com/calder-ross/pagemd/internal/logging"
)

// Flag variables.
var (
	flagOnly       bool
	flagAll        bool
	flagPDF        bool
	flagMarkdown   bool
	flagJSON       bool
	flagEmbeddings bool
	flagExtract    bool
	flagModel      string
	flagChunkSize  int
	flagOutputDir  string
	flagWrap       int
	flagJobs       int
	flagRate       float64
	flagMaxPages   int
)

var convertCmd = &cobra.Command{
	Use:   "convert <url|file>",
	Short: "Convert a URL or local HTML file to the specified output format",
	Long: `Convert fetches a webpage (or reads a local HTML file), converts it to
Markdown, and renders the specified output format (Markdown, PDF, JSON,
or embeddings).

Examples:
  pagemd convert https://example.com --markdown
  pagemd convert https://example.com --json --output_dir ./out
  pagemd convert https://example.com --all --pdf --jobs 8 --rate 2
  pagemd convert https://example.com --embeddings --model nomic-embed-text
  pagemd convert page.html --markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	defaults := config.Default()

	// Mode flags.
	convertCmd.Flags().BoolVar(&flagOnly, "only", false, "Convert only the given URL (default)")
	convertCmd.Flags().BoolVar(&flagAll, "all", false, "Convert all discovered sub-pages")

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	convertCmd.Flags().BoolVar(&flagEmbeddings, "embeddings", false, "Output embeddings")

	// Embedding-specific flags.
	convertCmd.Flags().StringVar(&flagModel, "model", "", "Embedding model (required with --embeddings)")
	convertCmd.Flags().IntVar(&flagChunkSize, "chunk_size", defaults.ChunkSize, "Token chunk size for embeddings")

	// Conversion tuning.
	convertCmd.Flags().BoolVar(&flagExtract, "extract", false, "Isolate main content before converting (reader mode)")
	convertCmd.Flags().IntVar(&flagWrap, "wrap", defaults.WrapWidth, "Soft-wrap column for Markdown output (0 disables)")

	// --all tuning.
	convertCmd.Flags().IntVar(&flagJobs, "jobs", defaults.Jobs, "Pages processed concurrently with --all")
	convertCmd.Flags().Float64Var(&flagRate, "rate", defaults.RatePerSecond, "Crawl fetches per second with --all (0 disables)")
	convertCmd.Flags().IntVar(&flagMaxPages, "max_pages", defaults.MaxPages, "Page cap for --all discovery")

	// Output directory.
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

// pipeline bundles the stages one convert run flows through.
type pipeline struct {
	fetcher    core.Fetcher
	extractor  core.Extractor // nil unless --extract
	normalizer core.Normalizer
	renderer   core.Renderer
	writer     *output.Writer
	settings   *config.Config
}

func runConvert(cmd *cobra.Command, args []string) error {
	target := args[0]

	settings := effectiveSettings(cmd)
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := validateFlags(settings); err != nil {
		return err
	}

	// A target naming an existing file is read from disk.
	isFile := false
	if info, err := os.Stat(target); err == nil && info.Mode().IsRegular() {
		isFile = true
	}

	if !isFile {
		parsed, err := url.Parse(target)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", target)
		}
	}
	if isFile && flagAll {
		return fmt.Errorf("--all requires a URL, not a file")
	}

	renderer, err := selectRenderer(settings)
	if err != nil {
		return err
	}

	writer, err := output.New(settings.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	p := &pipeline{
		fetcher: fetch.New(
			fetch.WithTimeout(settings.Timeout()),
			fetch.WithUserAgent(settings.UserAgent),
		),
		normalizer: normalize.New(normalize.WithWrapWidth(settings.WrapWidth)),
		renderer:   renderer,
		writer:     writer,
		settings:   settings,
	}
	if flagExtract {
		p.extractor = extract.New()
	}

	ctx := logging.WithLogger(context.Background(), logging.Default())

	switch {
	case isFile:
		return p.runFile(ctx, target)
	case flagAll:
		return p.runAll(ctx, target)
	default:
		return p.runOnly(ctx, target)
	}
}

// effectiveSettings merges flag values over the loaded config.
// A flag only wins when it was set on the command line.
func effectiveSettings(cmd *cobra.Command) *config.Config {
	settings := *cfg

	if cmd.Flags().Changed("output_dir") {
		settings.OutputDir = flagOutputDir
	}
	if cmd.Flags().Changed("wrap") {
		settings.WrapWidth = flagWrap
	}
	if cmd.Flags().Changed("jobs") {
		settings.Jobs = flagJobs
	}
	if cmd.Flags().Changed("rate") {
		settings.RatePerSecond = flagRate
	}
	if cmd.Flags().Changed("max_pages") {
		settings.MaxPages = flagMaxPages
	}
	if cmd.Flags().Changed("chunk_size") {
		settings.ChunkSize = flagChunkSize
	}
	if flagModel != "" {
		settings.Model = flagModel
	}

	return &settings
}

// runOnly processes a single URL through the pipeline.
func (p *pipeline) runOnly(ctx context.Context, rawURL string) error {
	data, _, err := p.process(ctx, rawURL)
	if err != nil {
		return err
	}

	path, err := p.writer.WriteOnly(rawURL, data, p.renderer.Extension())
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info("written", logging.FieldPath, path)
	return nil
}

// runFile converts a local HTML file.
func (p *pipeline) runFile(ctx context.Context, inputPath string) error {
	html, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	data, _, err := p.convert(ctx, inputPath, string(html))
	if err != nil {
		return err
	}

	path, err := p.writer.WriteNamed(inputPath, data, p.renderer.Extension())
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info("written", logging.FieldPath, path)
	return nil
}

// runAll discovers all internal pages and processes each through the
// pipeline, settings.Jobs pages at a time.
func (p *pipeline) runAll(ctx context.Context, rawURL string) error {
	logger := logging.FromContext(ctx)
	logger.Info("discovering pages", logging.FieldURL, rawURL)

	crawler := crawl.New(p.fetcher,
		crawl.WithRate(p.settings.RatePerSecond),
		crawl.WithMaxPages(p.settings.MaxPages),
	)
	urls, err := crawler.Discover(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	logger.Info("processing pages",
		logging.FieldPages, len(urls), logging.FieldJobs, p.settings.Jobs)

	var failed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.settings.Jobs)

	for _, pageURL := range urls {
		pageURL := pageURL
		g.Go(func() error {
			// Page failures are logged, not fatal; the rest of the
			// crawl proceeds.
			data, _, err := p.process(ctx, pageURL)
			if err != nil {
				logger.Error("page failed",
					logging.FieldURL, pageURL, logging.FieldError, err)
				failed.Add(1)
				return nil
			}

			path, skipped, err := p.writer.WriteAll(pageURL, data, p.renderer.Extension())
			if err != nil {
				logger.Error("write failed",
					logging.FieldURL, pageURL, logging.FieldError, err)
				failed.Add(1)
				return nil
			}
			if skipped {
				logger.Info("skipped duplicate content",
					logging.FieldURL, pageURL, logging.FieldPath, path)
				return nil
			}
			logger.Info("written",
				logging.FieldURL, pageURL, logging.FieldPath, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if n := failed.Load(); n > 0 {
		logger.Warn("some pages failed",
			logging.FieldPages, fmt.Sprintf("%d/%d", n, len(urls)))
	}
	return nil
}

// process runs a single URL through the full pipeline.
func (p *pipeline) process(ctx context.Context, rawURL string) ([]byte, core.PageMetadata, error) {
	result, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, core.PageMetadata{}, fmt.Errorf("fetch: %w", err)
	}
	return p.convert(ctx, rawURL, result.HTML)
}

// convert runs already-acquired HTML through extract, normalize, and render.
// source is the URL or file path the HTML came from.
func (p *pipeline) convert(ctx context.Context, source string, html string) ([]byte, core.PageMetadata, error) {
	content := html
	if p.extractor != nil {
		extracted, err := p.extractor.Extract(html)
		if err != nil {
			return nil, core.PageMetadata{}, fmt.Errorf("extract: %w", err)
		}
		content = extracted
	}

	markdown, err := p.normalizer.Normalize(content)
	if err != nil {
		return nil, core.PageMetadata{}, fmt.Errorf("normalize: %w", err)
	}

	// Metadata comes from the whole page, not the extracted fragment.
	meta := buildMetadata(source, html)

	data, err := p.renderer.Render(ctx, markdown, meta)
	if err != nil {
		return nil, core.PageMetadata{}, fmt.Errorf("render: %w", err)
	}

	return data, meta, nil
}

// buildMetadata constructs PageMetadata from the source and raw HTML.
func buildMetadata(source string, html string) core.PageMetadata {
	meta := core.PageMetadata{
		URL:       source,
		Language:  "en", // sensible default
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if parsed, err := url.Parse(source); err == nil {
		meta.Domain = parsed.Host
		meta.Path = parsed.Path
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return meta
	}
	meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if lang, ok := doc.Find("html").Attr("lang"); ok && lang != "" {
		meta.Language = lang
	}

	return meta
}

// validateFlags checks that exactly one output format is chosen and
// that --only and --all are not both specified.
func validateFlags(settings *config.Config) error {
	// Check mutually exclusive mode flags.
	if flagOnly && flagAll {
		return fmt.Errorf("--only and --all are mutually exclusive")
	}

	// Count output formats.
	formatCount := 0
	if flagPDF {
		formatCount++
	}
	if flagMarkdown {
		formatCount++
	}
	if flagJSON {
		formatCount++
	}
	if flagEmbeddings {
		formatCount++
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --pdf, --markdown, --json, or --embeddings")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	// A model is required with --embeddings, via flag or config file.
	if flagEmbeddings && settings.Model == "" {
		return fmt.Errorf("--model is required when using --embeddings")
	}

	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer(settings *config.Config) (core.Renderer, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	case flagEmbeddings:
		embedder := render.NewOllamaEmbedder()
		return render.NewEmbeddingsRenderer(embedder, settings.Model, settings.ChunkSize), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
