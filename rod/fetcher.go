// Package rod implements threadkit.Fetcher with a headless Chrome browser.
// Thread pages on both supported platforms render their replies with
// JavaScript, so this is the fetcher used against live URLs.
package rod

import (
	"context"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/fwojciec/threadkit"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Default tuning for rendering a thread page.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultScrollPause  = 800 * time.Millisecond
	DefaultExpandRounds = 3

	scrollDistance = 2000
	scrollSteps    = 4
	domStableFor   = 300 * time.Millisecond
)

// DefaultExpandPattern matches the text of controls that reveal collapsed
// replies on Twitter and Weibo.
var DefaultExpandPattern = regexp.MustCompile(`(?i)show (more )?replies|show additional replies|查看更多|展开|共\d+条回复`)

// expandCandidates are the elements whose text is tested against the
// expand pattern.
const expandCandidates = `[role="button"], button, a.more, .more`

// Ensure Fetcher implements threadkit.Fetcher at compile time.
var _ threadkit.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager       *BrowserManager
	managerOpts   []ManagerOption
	fetchTimeout  time.Duration
	scrollPause   time.Duration
	expandRounds  int
	expandPattern *regexp.Regexp
	closed        atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds a single Fetch call, including scrolling and
// reply expansion.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithScrollPause sets how long to wait after each scroll round for
// lazily loaded replies.
func WithScrollPause(d time.Duration) Option {
	return func(f *Fetcher) {
		f.scrollPause = d
	}
}

// WithExpandPattern replaces the text pattern used to find
// "show replies" controls.
func WithExpandPattern(re *regexp.Regexp) Option {
	return func(f *Fetcher) {
		f.expandPattern = re
	}
}

// WithExpandRounds sets how many click passes are made over reply
// expansion controls.
func WithExpandRounds(n int) Option {
	return func(f *Fetcher) {
		f.expandRounds = n
	}
}

// WithManagerOptions passes options through to the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout:  DefaultFetchTimeout,
		scrollPause:   DefaultScrollPause,
		expandRounds:  DefaultExpandRounds,
		expandPattern: DefaultExpandPattern,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML. The page is
// scrolled opts.ScrollRounds times and, when opts.ExpandReplies is set,
// collapsed reply controls are clicked before the DOM is serialized.
func (f *Fetcher) Fetch(ctx context.Context, url string, opts threadkit.RenderOptions) (string, error) {
	if f.closed.Load() {
		return "", threadkit.Errorf(threadkit.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer f.manager.IncrementPageCount()
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if err := page.WaitDOMStable(domStableFor, 0); err != nil {
		return "", err
	}

	for i := 0; i < opts.ScrollRounds; i++ {
		if err := page.Mouse.Scroll(0, scrollDistance, scrollSteps); err != nil {
			return "", err
		}
		if err := pause(ctx, f.scrollPause); err != nil {
			return "", err
		}
	}

	if opts.ExpandReplies {
		if err := f.expand(ctx, page); err != nil {
			return "", err
		}
	}

	return page.HTML()
}

// expand clicks every visible control whose text matches the expand
// pattern, repeating until a pass finds nothing or the round limit is hit.
func (f *Fetcher) expand(ctx context.Context, page *rod.Page) error {
	if f.expandPattern == nil {
		return nil
	}
	for round := 0; round < f.expandRounds; round++ {
		els, err := page.Elements(expandCandidates)
		if err != nil {
			return err
		}
		clicked := 0
		for _, el := range els {
			text, err := el.Text()
			if err != nil || !f.expandPattern.MatchString(text) {
				continue
			}
			// Controls detach once clicked; a failed click is not fatal.
			if err := el.Click(proto.InputMouseButtonLeft, 1); err == nil {
				clicked++
			}
		}
		if clicked == 0 {
			return nil
		}
		if err := pause(ctx, f.scrollPause); err != nil {
			return err
		}
	}
	return nil
}

func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
