package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/threadkit"
)

// Ensure LoggingExtractor implements threadkit.ThreadExtractor.
var _ threadkit.ThreadExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a ThreadExtractor with logging of the selected
// platform, the number of posts and the duration.
type LoggingExtractor struct {
	next   threadkit.ThreadExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next threadkit.ThreadExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html string, pageURL string, opts threadkit.ExtractOptions) (result *threadkit.ExtractResult, err error) {
	defer func(begin time.Time) {
		platform := "(none)"
		count := 0
		if result != nil {
			platform = string(result.Platform)
			count = len(result.Posts)
		}
		e.logger.Info("extract",
			"url", pageURL,
			"platform", platform,
			"posts", count,
			"excluded", len(opts.ExcludeIDs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, pageURL, opts)
}
