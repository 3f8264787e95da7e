package main

import (
	"context"
	"os"

	"github.com/fwojciec/threadkit"
)

var _ threadkit.Fetcher = (*FileFetcher)(nil)

// FileFetcher serves a saved page from disk for any URL.
type FileFetcher struct {
	Path string
}

// Fetch returns the file contents. The URL only selects the platform.
func (f *FileFetcher) Fetch(ctx context.Context, _ string, _ threadkit.RenderOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", threadkit.Errorf(threadkit.ENOTFOUND, "reading %s: %v", f.Path, err)
	}
	return string(b), nil
}

// Close is a no-op.
func (f *FileFetcher) Close() error {
	return nil
}
