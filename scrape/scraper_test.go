package scrape_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/threadkit"
	"github.com/fwojciec/threadkit/mock"
	"github.com/fwojciec/threadkit/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posts(ids ...string) []*threadkit.Post {
	out := make([]*threadkit.Post, len(ids))
	for i, id := range ids {
		out[i] = &threadkit.Post{ID: id, IsMainPost: i == 0}
	}
	return out
}

func TestScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("wraps extracted posts in a success response", func(t *testing.T) {
		t.Parallel()

		var gotOpts threadkit.RenderOptions
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string, opts threadkit.RenderOptions) (string, error) {
					gotOpts = opts
					return "<html></html>", nil
				},
			},
			Extractor: &mock.ThreadExtractor{
				ExtractFn: func(_ string, pageURL string, _ threadkit.ExtractOptions) (*threadkit.ExtractResult, error) {
					return &threadkit.ExtractResult{
						Platform: threadkit.PlatformTwitter,
						URL:      pageURL,
						Posts:    posts("1001", "1002"),
					}, nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		resp := s.Scrape(context.Background(), "https://x.com/a/status/1001", threadkit.ExtractOptions{
			ExpandReplies: true,
			ScrollRounds:  2,
		})

		require.True(t, resp.Success)
		assert.Len(t, resp.Posts, 2)
		assert.Equal(t, "https://x.com/a/status/1001", resp.URL)
		assert.Equal(t, threadkit.RenderOptions{ExpandReplies: true, ScrollRounds: 2}, gotOpts)
	})

	t.Run("reports fetch failure", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string, _ threadkit.RenderOptions) (string, error) {
					return "", errors.New("HTTP 500")
				},
			},
			Extractor:   &mock.ThreadExtractor{},
			RetryDelays: []time.Duration{0},
		}

		resp := s.Scrape(context.Background(), "https://x.com/a/status/1", threadkit.ExtractOptions{})

		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "HTTP 500")
		assert.Nil(t, resp.Posts)
	})

	t.Run("reports extraction error message", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string, _ threadkit.RenderOptions) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.ThreadExtractor{
				ExtractFn: func(_ string, _ string, _ threadkit.ExtractOptions) (*threadkit.ExtractResult, error) {
					return nil, threadkit.Errorf(threadkit.EINVALID, "invalid selector %q", "[")
				},
			},
			RetryDelays: []time.Duration{},
		}

		resp := s.Scrape(context.Background(), "https://x.com/a/status/1", threadkit.ExtractOptions{})

		assert.False(t, resp.Success)
		assert.Equal(t, `invalid selector "["`, resp.Error)
	})

	t.Run("recovers panics", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string, _ threadkit.RenderOptions) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.ThreadExtractor{
				ExtractFn: func(_ string, _ string, _ threadkit.ExtractOptions) (*threadkit.ExtractResult, error) {
					panic("boom")
				},
			},
			RetryDelays: []time.Duration{},
		}

		resp := s.Scrape(context.Background(), "https://x.com/a/status/1", threadkit.ExtractOptions{})

		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "boom")
	})

	t.Run("rejects invalid options without fetching", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher:   &mock.Fetcher{},
			Extractor: &mock.ThreadExtractor{},
		}

		resp := s.Scrape(context.Background(), "https://x.com/a/status/1", threadkit.ExtractOptions{
			CommentLimit: threadkit.Limit(-1),
		})

		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("rejects non-http URL", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher:   &mock.Fetcher{},
			Extractor: &mock.ThreadExtractor{},
		}

		resp := s.Scrape(context.Background(), "ftp://x.com/a", threadkit.ExtractOptions{})

		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "invalid URL")
	})

	t.Run("waits on the rate limiter for the host", func(t *testing.T) {
		t.Parallel()

		var domains []string
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string, _ threadkit.RenderOptions) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.ThreadExtractor{
				ExtractFn: func(_ string, pageURL string, _ threadkit.ExtractOptions) (*threadkit.ExtractResult, error) {
					return &threadkit.ExtractResult{URL: pageURL}, nil
				},
			},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					domains = append(domains, domain)
					return nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		resp := s.Scrape(context.Background(), "https://Weibo.com/123/AbCdE", threadkit.ExtractOptions{})

		require.True(t, resp.Success)
		assert.Equal(t, []string{"weibo.com"}, domains)
		assert.NotNil(t, resp.Posts)
	})
}

func TestScraper_ScrapeAll(t *testing.T) {
	t.Parallel()

	t.Run("returns responses in input order", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string, _ threadkit.RenderOptions) (string, error) {
					if url == "https://x.com/b/status/2" {
						return "", threadkit.Errorf(threadkit.ENOTFOUND, "HTTP 404")
					}
					return url, nil
				},
			},
			Extractor: &mock.ThreadExtractor{
				ExtractFn: func(html string, pageURL string, _ threadkit.ExtractOptions) (*threadkit.ExtractResult, error) {
					return &threadkit.ExtractResult{URL: pageURL, Posts: posts(html)}, nil
				},
			},
			Concurrency: 2,
			RetryDelays: []time.Duration{0},
		}
		urls := []string{
			"https://x.com/a/status/1",
			"https://x.com/b/status/2",
			"https://x.com/c/status/3",
		}

		responses := s.ScrapeAll(context.Background(), urls, threadkit.ExtractOptions{})

		require.Len(t, responses, 3)
		assert.True(t, responses[0].Success)
		assert.Equal(t, urls[0], responses[0].Posts[0].ID)
		assert.False(t, responses[1].Success)
		assert.Equal(t, "HTTP 404", responses[1].Error)
		assert.True(t, responses[2].Success)
		assert.Equal(t, urls[2], responses[2].URL)
	})

	t.Run("bounds concurrent scrapes", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var inFlight, peak int
		var total atomic.Int32
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string, _ threadkit.RenderOptions) (string, error) {
					mu.Lock()
					inFlight++
					peak = max(peak, inFlight)
					mu.Unlock()

					time.Sleep(20 * time.Millisecond)

					mu.Lock()
					inFlight--
					mu.Unlock()
					total.Add(1)
					return "", nil
				},
			},
			Extractor: &mock.ThreadExtractor{
				ExtractFn: func(_ string, pageURL string, _ threadkit.ExtractOptions) (*threadkit.ExtractResult, error) {
					return &threadkit.ExtractResult{URL: pageURL}, nil
				},
			},
			Concurrency: 2,
			RetryDelays: []time.Duration{},
		}
		urls := []string{
			"https://x.com/a/status/1",
			"https://x.com/a/status/2",
			"https://x.com/a/status/3",
			"https://x.com/a/status/4",
			"https://x.com/a/status/5",
		}

		responses := s.ScrapeAll(context.Background(), urls, threadkit.ExtractOptions{})

		assert.Len(t, responses, 5)
		assert.Equal(t, int32(5), total.Load())
		assert.LessOrEqual(t, peak, 2)
	})
}
