package threadkit

// ExtractResult holds the posts reconstructed from one page.
type ExtractResult struct {
	// Platform is the adapter that was used. Unknown hosts use the default
	// adapter, so this is never PlatformUnknown for a successful extraction.
	Platform PlatformName

	// URL is the page URL in canonical form.
	URL string

	Posts []*Post
}

// ThreadExtractor reconstructs a conversation thread from rendered HTML.
type ThreadExtractor interface {
	// Extract parses html, selects a platform adapter for pageURL and
	// returns the ordered posts. It performs no I/O and keeps no state
	// between calls, so repeated calls with the same input return the same
	// result. A page without any posts is not an error.
	Extract(html string, pageURL string, opts ExtractOptions) (*ExtractResult, error)
}
