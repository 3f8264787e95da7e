package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/threadkit"
)

// Platform abstracts over a source site's markup and URL scheme.
// Element methods never fail: a field that cannot be found yields its zero
// value.
type Platform interface {
	Name() threadkit.PlatformName
	HostPatterns() []string
	Selectors() threadkit.Selectors

	// IsValidURL reports whether the URL belongs to this platform.
	IsValidURL(rawURL string) bool

	// IsThreadURL reports whether the URL points at a single post.
	IsThreadURL(rawURL string) bool

	// ExtractPostID returns the post ID embedded in the URL, or "".
	ExtractPostID(rawURL string) string

	// NormalizeURL maps alternate hostnames to the canonical one and strips
	// query and fragment.
	NormalizeURL(rawURL string) string

	// ExtractPostIDFromElement resolves a structural ID for a post
	// container, or returns "" when none can be found.
	ExtractPostIDFromElement(s *goquery.Selection) string

	// HasReplies returns nil when the markup gives no indication.
	HasReplies(s *goquery.Selection) *bool

	// IsInlineReply reports whether the post was injected inline below a
	// "show replies" affordance.
	IsInlineReply(s *goquery.Selection) bool

	// FindPrimaryPostLink returns the link identifying the post itself,
	// ignoring links of nested quoted posts. The selection may be empty.
	FindPrimaryPostLink(s *goquery.Selection) *goquery.Selection

	// GetPostURL returns the canonical URL of the post, or "".
	GetPostURL(s *goquery.Selection) string
}

// StructuredEntry is one post expanded from a structured container.
type StructuredEntry struct {
	// Node is the element the entry was read from.
	Node *goquery.Selection

	// ID may be empty, in which case a fallback ID is derived.
	ID          string
	Text        string
	Author      string
	Timestamp   string
	URL         string
	HasReplies  *bool
	InlineReply bool
}

// StructuredPlatform is implemented by platforms whose containers can hold
// a top-level reply together with its nested sub-replies.
type StructuredPlatform interface {
	Platform

	// ExtractStructured expands a container into its top-level entry
	// followed by the nested entries in document order. It returns false
	// when the container does not have the structured shape.
	ExtractStructured(container *goquery.Selection) ([]StructuredEntry, bool)
}

// TextCleaner is implemented by platforms that strip UI boilerplate from
// post text.
type TextCleaner interface {
	CleanText(raw string) string
}

// PlatformOption configures a platform adapter.
type PlatformOption func(*threadkit.Selectors)

// WithSelectors applies the non-empty fields of override to the adapter's
// default selectors.
func WithSelectors(override threadkit.Selectors) PlatformOption {
	return func(s *threadkit.Selectors) {
		*s = s.Merge(override)
	}
}

func applyOptions(defaults threadkit.Selectors, opts []PlatformOption) threadkit.Selectors {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}
