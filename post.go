package threadkit

// Post represents a single entry of a reconstructed thread.
type Post struct {
	// ID is non-empty and unique within one extraction result. When the page
	// carries no structural identifier it is a hash of author, timestamp and
	// text.
	ID string `json:"id"`

	Text   string `json:"text"`
	Author string `json:"author"`

	// Timestamp is ISO-8601 when sourced from a machine-readable attribute,
	// otherwise the raw display text, otherwise empty.
	Timestamp string `json:"timestamp"`

	// IsMainPost marks the root of the thread. At most one post per result.
	IsMainPost bool `json:"isMainPost"`

	URL string `json:"url,omitempty"`

	// HasReplies is nil when the page gives no indication either way.
	HasReplies *bool `json:"hasReplies,omitempty"`

	InlineReply bool `json:"inlineReply,omitempty"`

	// GroupStart and GroupEnd mark the boundaries of runs of structurally
	// adjacent posts, used to render visual thread continuity.
	GroupStart bool `json:"groupStart,omitempty"`
	GroupEnd   bool `json:"groupEnd,omitempty"`
}

// ExtractOptions controls which posts an extraction returns.
type ExtractOptions struct {
	// CommentLimit caps the number of replies kept after the main post.
	// Nil means no limit.
	CommentLimit *int `json:"commentLimit,omitempty"`

	// ExcludeIDs lists post IDs the caller already knows about. Used when
	// re-extracting incrementally during pagination.
	ExcludeIDs []string `json:"excludeIds,omitempty"`

	// ExpandReplies and ScrollRounds are consumed by page fetchers before
	// extraction runs. The extraction engine ignores them.
	ExpandReplies bool `json:"expandReplies,omitempty"`
	ScrollRounds  int  `json:"scrollRounds,omitempty"`
}

// Validate returns an error if the options contain invalid fields.
func (o ExtractOptions) Validate() error {
	if o.CommentLimit != nil && *o.CommentLimit < 0 {
		return Errorf(EINVALID, "comment limit must not be negative")
	}
	if o.ScrollRounds < 0 {
		return Errorf(EINVALID, "scroll rounds must not be negative")
	}
	return nil
}

// RenderOptions returns the subset of options consumed by page fetchers.
func (o ExtractOptions) RenderOptions() RenderOptions {
	return RenderOptions{
		ExpandReplies: o.ExpandReplies,
		ScrollRounds:  o.ScrollRounds,
	}
}

// Limit returns a pointer to n, for use as ExtractOptions.CommentLimit.
func Limit(n int) *int {
	return &n
}
