// Package scrape ties a Fetcher and a ThreadExtractor together and reports
// the outcome as a threadkit.Response envelope. Retry, per-host rate
// limiting and batch concurrency live here so that neither the fetchers
// nor the extraction engine need to know about them.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/threadkit"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds ScrapeAll when Concurrency is not set.
const DefaultConcurrency = 4

var _ threadkit.ThreadScraper = (*Scraper)(nil)

// Scraper fetches thread pages and extracts their posts.
type Scraper struct {
	Fetcher     threadkit.Fetcher
	Extractor   threadkit.ThreadExtractor
	RateLimiter threadkit.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Logf        LogFunc
}

// Scrape fetches url and extracts its thread. It never returns an error:
// fetch failures, extraction failures and panics all become a response
// with Success set to false.
func (s *Scraper) Scrape(ctx context.Context, rawURL string, opts threadkit.ExtractOptions) (resp *threadkit.Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = threadkit.FailureResponse(rawURL, threadkit.Errorf(threadkit.EINTERNAL, "scrape panicked: %v", r))
		}
	}()

	result, err := s.scrape(ctx, rawURL, opts)
	if err != nil {
		return threadkit.FailureResponse(rawURL, err)
	}
	return threadkit.NewResponse(result)
}

func (s *Scraper) scrape(ctx context.Context, rawURL string, opts threadkit.ExtractOptions) (*threadkit.ExtractResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	host, err := hostname(rawURL)
	if err != nil {
		return nil, err
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	fetch := func(ctx context.Context, u string) (string, error) {
		if s.RateLimiter != nil {
			if err := s.RateLimiter.Wait(ctx, host); err != nil {
				return "", err
			}
		}
		return s.Fetcher.Fetch(ctx, u, opts.RenderOptions())
	}

	html, err := FetchWithRetry(ctx, rawURL, fetch, s.Logf, delays)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	result, err := s.Extractor.Extract(html, rawURL, opts)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", rawURL, err)
	}
	return result, nil
}

// ScrapeAll scrapes every URL with at most Concurrency scrapes in flight.
// Responses are returned in the order of urls.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, opts threadkit.ExtractOptions) []*threadkit.Response {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	responses := make([]*threadkit.Response, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			responses[i] = s.Scrape(gctx, u, opts)
			return nil
		})
	}
	_ = g.Wait()

	return responses
}

func hostname(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return "", threadkit.Errorf(threadkit.EINVALID, "invalid URL: %q", rawURL)
	}
	return strings.ToLower(u.Hostname()), nil
}
