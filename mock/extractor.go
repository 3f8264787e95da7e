package mock

import "github.com/fwojciec/threadkit"

var _ threadkit.ThreadExtractor = (*ThreadExtractor)(nil)

// ThreadExtractor is a mock implementation of threadkit.ThreadExtractor.
type ThreadExtractor struct {
	ExtractFn func(html string, pageURL string, opts threadkit.ExtractOptions) (*threadkit.ExtractResult, error)
}

func (e *ThreadExtractor) Extract(html string, pageURL string, opts threadkit.ExtractOptions) (*threadkit.ExtractResult, error) {
	return e.ExtractFn(html, pageURL, opts)
}
