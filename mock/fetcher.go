package mock

import (
	"context"

	"github.com/fwojciec/threadkit"
)

var _ threadkit.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of threadkit.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, opts threadkit.RenderOptions) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string, opts threadkit.RenderOptions) (string, error) {
	return f.FetchFn(ctx, url, opts)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ threadkit.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of threadkit.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ threadkit.ThreadScraper = (*ThreadScraper)(nil)

// ThreadScraper is a mock implementation of threadkit.ThreadScraper.
type ThreadScraper struct {
	ScrapeFn func(ctx context.Context, url string, opts threadkit.ExtractOptions) *threadkit.Response
}

func (s *ThreadScraper) Scrape(ctx context.Context, url string, opts threadkit.ExtractOptions) *threadkit.Response {
	return s.ScrapeFn(ctx, url, opts)
}
