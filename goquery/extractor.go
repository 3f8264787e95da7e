package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/threadkit"
)

// Ensure ThreadExtractor implements threadkit.ThreadExtractor at compile time.
var _ threadkit.ThreadExtractor = (*ThreadExtractor)(nil)

// ThreadExtractor reconstructs threads from HTML using the platform adapter
// the registry selects for the page URL. It holds no per-call state and is
// safe for concurrent use.
type ThreadExtractor struct {
	registry *Registry
}

// NewThreadExtractor creates a ThreadExtractor backed by registry.
func NewThreadExtractor(registry *Registry) *ThreadExtractor {
	return &ThreadExtractor{registry: registry}
}

// Extract parses html and reconstructs the thread for pageURL.
func (e *ThreadExtractor) Extract(html string, pageURL string, opts threadkit.ExtractOptions) (*threadkit.ExtractResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, threadkit.Errorf(threadkit.EINVALID, "failed to parse HTML: %v", err)
	}

	platform := e.registry.ForURL(pageURL)
	posts, err := ExtractThread(doc, platform, opts)
	if err != nil {
		return nil, err
	}

	return &threadkit.ExtractResult{
		Platform: platform.Name(),
		URL:      platform.NormalizeURL(pageURL),
		Posts:    posts,
	}, nil
}

// entry is a post under construction together with the node it was read
// from and its row for adjacency.
type entry struct {
	post *threadkit.Post
	node *goquery.Selection
	row  rowPosition
}

// matchers holds the compiled selectors the pipeline itself walks with.
type matchers struct {
	container cascadia.Selector
	cell      cascadia.Selector
	column    cascadia.Selector
}

// ExtractThread runs the extraction pipeline over doc:
//
//  1. enumerate outermost post containers inside the main column
//  2. extract entries, expanding structured containers
//  3. capture each entry's row position
//  4. drop inline replies (all platforms but Weibo)
//  5. apply the comment limit
//  6. drop excluded IDs
//  7. compute group boundaries
//
// Missing fields are left empty. Malformed selectors are reported as
// EINVALID; a panic during traversal is reported as EINTERNAL.
func ExtractThread(doc *goquery.Document, p Platform, opts threadkit.ExtractOptions) (posts []*threadkit.Post, err error) {
	defer func() {
		if r := recover(); r != nil {
			posts = nil
			err = threadkit.Errorf(threadkit.EINTERNAL, "extraction failed: %v", r)
		}
	}()

	m, err := compileSelectors(p.Selectors())
	if err != nil {
		return nil, err
	}

	containers := enumerateContainers(scope(doc.Selection, m.column), m.container)
	entries := extractEntries(containers, p)
	entries = dedupe(entries)

	index := newNodeIndex(doc.Get(0))
	for i := range entries {
		entries[i].row = rowOf(entries[i].node, m.cell, index)
	}

	if p.Name() != threadkit.PlatformWeibo {
		entries = dropInlineReplies(entries)
	}
	entries = limitComments(entries, opts.CommentLimit)

	return groupPosts(entries, excludeSet(opts.ExcludeIDs)), nil
}

// compileSelectors validates every selector of the platform up front so
// that a malformed one fails the extraction instead of silently matching
// nothing.
func compileSelectors(sel threadkit.Selectors) (*matchers, error) {
	if strings.TrimSpace(sel.PostContainer) == "" {
		return nil, threadkit.Errorf(threadkit.EINVALID, "post container selector required")
	}

	all := map[string]string{
		"postContainer":     sel.PostContainer,
		"postText":          sel.PostText,
		"authorName":        sel.AuthorName,
		"timestamp":         sel.Timestamp,
		"replyButton":       sel.ReplyButton,
		"showRepliesButton": sel.ShowRepliesButton,
		"cellContainer":     sel.CellContainer,
		"mainColumn":        sel.MainColumn,
	}
	compiled := make(map[string]cascadia.Selector, len(all))
	for name, s := range all {
		if s == "" {
			continue
		}
		c, err := cascadia.Compile(s)
		if err != nil {
			return nil, threadkit.Errorf(threadkit.EINVALID, "invalid %s selector %q: %v", name, s, err)
		}
		compiled[name] = c
	}

	return &matchers{
		container: compiled["postContainer"],
		cell:      compiled["cellContainer"],
		column:    compiled["mainColumn"],
	}, nil
}

// scope narrows root to the first main column match so that posts in
// sidebars and recommendation panels are ignored. Pages without a match
// are searched whole.
func scope(root *goquery.Selection, column cascadia.Selector) *goquery.Selection {
	if column == nil {
		return root
	}
	if main := root.FindMatcher(column).First(); main.Length() > 0 {
		return main
	}
	return root
}

// enumerateContainers returns matching nodes in document order, skipping
// any node nested inside another match.
func enumerateContainers(root *goquery.Selection, container cascadia.Selector) *goquery.Selection {
	return root.FindMatcher(container).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsMatcher(container).Length() == 0
	})
}

func extractEntries(containers *goquery.Selection, p Platform) []entry {
	structured, _ := p.(StructuredPlatform)

	var entries []entry
	position := 0
	containers.Each(func(i int, c *goquery.Selection) {
		if structured != nil {
			if items, ok := structured.ExtractStructured(c); ok {
				var block []entry
				block, position = expandStructured(items, i, position)
				entries = append(entries, block...)
				return
			}
		}
		entries = append(entries, extractGeneric(c, i, p))
	})
	return entries
}

// expandStructured turns structured items into entries. position counts
// structured entries across all containers of the page; it is returned
// advanced past this block.
func expandStructured(items []StructuredEntry, containerIndex, position int) ([]entry, int) {
	entries := make([]entry, 0, len(items))
	for _, item := range items {
		id := item.ID
		if id == "" {
			id = FallbackID(item.Author, item.Timestamp, item.Text)
		}
		entries = append(entries, entry{
			node: item.Node,
			post: &threadkit.Post{
				ID:          id,
				Text:        item.Text,
				Author:      item.Author,
				Timestamp:   item.Timestamp,
				IsMainPost:  position == 0 && containerIndex == 0,
				URL:         item.URL,
				HasReplies:  item.HasReplies,
				InlineReply: item.InlineReply,
			},
		})
		position++
	}
	return entries, position
}

func extractGeneric(c *goquery.Selection, index int, p Platform) entry {
	sel := p.Selectors()

	text := firstText(c, sel.PostText)
	if cleaner, ok := p.(TextCleaner); ok {
		text = cleaner.CleanText(text)
	}
	author := firstText(c, sel.AuthorName)
	timestamp := timestampOf(c, sel.Timestamp)

	id := p.ExtractPostIDFromElement(c)
	if id == "" {
		id = FallbackID(author, timestamp, text)
	}

	return entry{
		node: c,
		post: &threadkit.Post{
			ID:          id,
			Text:        text,
			Author:      author,
			Timestamp:   timestamp,
			IsMainPost:  index == 0,
			URL:         p.GetPostURL(c),
			HasReplies:  p.HasReplies(c),
			InlineReply: p.IsInlineReply(c),
		},
	}
}

// firstText returns the trimmed text of the first match of selector.
func firstText(s *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(s.Find(selector).First().Text())
}

// timestampOf prefers the machine-readable datetime attribute over the
// displayed text.
func timestampOf(s *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	t := s.Find(selector).First()
	if dt := strings.TrimSpace(t.AttrOr("datetime", "")); dt != "" {
		return dt
	}
	return strings.TrimSpace(t.Text())
}

// dedupe keeps the first entry for every ID.
func dedupe(entries []entry) []entry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if seen[e.post.ID] {
			continue
		}
		seen[e.post.ID] = true
		out = append(out, e)
	}
	return out
}

// rowOf returns the position of the nearest ancestor matching cell, or of
// the node's immediate parent when there is none.
func rowOf(node *goquery.Selection, cell cascadia.Selector, index *nodeIndex) rowPosition {
	row := node.Parent()
	if cell != nil {
		if c := row.ClosestMatcher(cell); c.Length() > 0 {
			row = c
		}
	}
	if row.Length() == 0 {
		return index.position(nil)
	}
	return index.position(row.Get(0))
}

func dropInlineReplies(entries []entry) []entry {
	out := entries[:0]
	for _, e := range entries {
		if !e.post.InlineReply {
			out = append(out, e)
		}
	}
	return out
}

// limitComments keeps the main entry plus the first limit entries after it.
func limitComments(entries []entry, limit *int) []entry {
	if limit == nil || len(entries) <= 1 {
		return entries
	}
	if n := 1 + *limit; n < len(entries) {
		return entries[:n]
	}
	return entries
}

func excludeSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// groupPosts drops excluded entries and sets group boundaries on the rest.
// Each post is compared with its nearest kept neighbour; the two are
// continuous only when every row between them, excluded ones included,
// follows the one before it. Entries removed earlier in the pipeline are
// already gone, so the rows around them no longer line up.
func groupPosts(entries []entry, exclude map[string]bool) []*threadkit.Post {
	kept := make([]int, 0, len(entries))
	for i, e := range entries {
		if !exclude[e.post.ID] {
			kept = append(kept, i)
		}
	}

	posts := make([]*threadkit.Post, 0, len(kept))
	for k, i := range kept {
		p := entries[i].post
		p.GroupStart = k == 0 || !continuous(entries, kept[k-1], i)
		p.GroupEnd = k == len(kept)-1 || !continuous(entries, i, kept[k+1])
		posts = append(posts, p)
	}
	return posts
}

// continuous reports whether each row from entries[from] through
// entries[to] directly follows the previous one.
func continuous(entries []entry, from, to int) bool {
	for j := from + 1; j <= to; j++ {
		if !entries[j].row.follows(entries[j-1].row) {
			return false
		}
	}
	return true
}
