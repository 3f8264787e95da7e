package main

import (
	"time"

	"github.com/fwojciec/threadkit"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs        []string      `arg:"" name:"url" help:"Thread URL(s) to extract"`
	File        string        `short:"f" type:"existingfile" env:"THREADFETCH_FILE" help:"Read HTML from a saved page instead of fetching the URL"`
	Limit       int           `short:"n" default:"-1" env:"THREADFETCH_LIMIT" help:"Maximum number of replies after the main post (-1 for no limit)"`
	Exclude     []string      `short:"x" sep:"," env:"THREADFETCH_EXCLUDE" help:"Post IDs to leave out of the output"`
	Browser     bool          `short:"b" env:"THREADFETCH_BROWSER" help:"Render the page in headless Chrome"`
	Expand      bool          `short:"e" env:"THREADFETCH_EXPAND" help:"Click show-replies controls before extracting (with --browser)"`
	Scroll      int           `short:"s" default:"0" env:"THREADFETCH_SCROLL" help:"Scroll rounds to load more replies (with --browser)"`
	Timeout     time.Duration `short:"t" default:"30s" env:"THREADFETCH_TIMEOUT" help:"Per-page fetch timeout"`
	Selectors   string        `type:"existingfile" env:"THREADFETCH_SELECTORS" help:"YAML file with selector overrides"`
	Concurrency int           `short:"c" default:"4" env:"THREADFETCH_CONCURRENCY" help:"Pages fetched at once when several URLs are given"`
	RateLimit   float64       `default:"1" env:"THREADFETCH_RATE_LIMIT" help:"Requests per second per host"`
	Verbose     bool          `short:"v" env:"THREADFETCH_VERBOSE" help:"Log fetch and extraction steps to stderr"`
}

// ExtractOptions converts the flags into extraction options.
func (c *CLI) ExtractOptions() threadkit.ExtractOptions {
	opts := threadkit.ExtractOptions{
		ExcludeIDs:    c.Exclude,
		ExpandReplies: c.Expand,
		ScrollRounds:  c.Scroll,
	}
	if c.Limit >= 0 {
		opts.CommentLimit = threadkit.Limit(c.Limit)
	}
	return opts
}
