package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/threadkit"
	"github.com/fwojciec/threadkit/goquery"
	tkhttp "github.com/fwojciec/threadkit/http"
	"github.com/fwojciec/threadkit/rod"
	"github.com/fwojciec/threadkit/scrape"
	tkslog "github.com/fwojciec/threadkit/slog"
	"github.com/fwojciec/threadkit/yaml"
	"github.com/joho/godotenv"
)

// ErrScrapeFailed is returned after printing when any envelope reports failure.
var ErrScrapeFailed = errors.New("scrape failed")

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher replaces the HTTP and browser fetchers when set.
	Fetcher threadkit.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("threadfetch"),
		kong.Description("Extract a conversation thread from a Twitter or Weibo page as JSON"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if cli.File != "" && len(cli.URLs) > 1 {
		return fmt.Errorf("--file takes exactly one URL")
	}

	overrides := threadkit.SelectorOverrides{}
	if cli.Selectors != "" {
		if overrides, err = yaml.LoadSelectorsFile(cli.Selectors); err != nil {
			return err
		}
	}

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	fetcher, err := m.fetcher(cli)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	var extractor threadkit.ThreadExtractor = goquery.NewThreadExtractor(goquery.NewDefaultRegistry(overrides))
	if logger != nil {
		fetcher = tkslog.NewLoggingFetcher(fetcher, logger)
		extractor = tkslog.NewLoggingExtractor(extractor, logger)
	}

	scraper := &scrape.Scraper{
		Fetcher:     fetcher,
		Extractor:   extractor,
		RateLimiter: scrape.NewDomainLimiter(cli.RateLimit, 1),
		Concurrency: cli.Concurrency,
	}
	if cli.File != "" {
		scraper.RetryDelays = []time.Duration{}
	}
	if logger != nil {
		scraper.Logf = func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		}
	}

	opts := cli.ExtractOptions()

	if len(cli.URLs) == 1 {
		resp := scraper.Scrape(ctx, cli.URLs[0], opts)
		if err := writeJSON(stdout, resp); err != nil {
			return err
		}
		if !resp.Success {
			return ErrScrapeFailed
		}
		return nil
	}

	responses := scraper.ScrapeAll(ctx, cli.URLs, opts)
	if err := writeJSON(stdout, responses); err != nil {
		return err
	}
	for _, resp := range responses {
		if !resp.Success {
			return ErrScrapeFailed
		}
	}
	return nil
}

// fetcher picks the page source: an injected fetcher, a local file, the
// headless browser, or plain HTTP.
func (m *Main) fetcher(cli *CLI) (threadkit.Fetcher, error) {
	switch {
	case m.Fetcher != nil:
		return m.Fetcher, nil
	case cli.File != "":
		return &FileFetcher{Path: cli.File}, nil
	case cli.Browser:
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return f, nil
	default:
		return tkhttp.NewFetcher(tkhttp.WithTimeout(cli.Timeout)), nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
