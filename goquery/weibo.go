package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/threadkit"
)

var (
	_ StructuredPlatform = (*Weibo)(nil)
	_ TextCleaner        = (*Weibo)(nil)
)

const weiboCanonicalHost = "weibo.com"

var weiboHosts = []string{
	"weibo.com",
	"www.weibo.com",
	"m.weibo.com",
	"m.weibo.cn",
	"weibo.cn",
}

var (
	weiboDetailPath = regexp.MustCompile(`^/(?:detail|status)/([A-Za-z0-9]+)/?$`)
	weiboPostPath   = regexp.MustCompile(`^/\d+/([A-Za-z0-9]+)/?$`)
)

var weiboIDAttributes = []string{"mid", "data-mid", "comment-id", "data-id", "id"}

// Structured comment markup: a container holds one .item1 and a .list2 of
// .item2 sub-replies, each with a .text body and an .info line.
const (
	weiboTopItem  = ".item1"
	weiboSubItems = ".list2 .item2"
	weiboSubList  = ".list2"
	weiboItemText = ".text"
	weiboItemInfo = ".info"
)

// DefaultWeiboSelectors returns the selectors for Weibo markup.
func DefaultWeiboSelectors() threadkit.Selectors {
	return threadkit.Selectors{
		PostContainer:     `article.woo-panel-main, div.wbpro-list`,
		PostText:          `[class*="detail_wbtext"], .text`,
		AuthorName:        `[class*="head_name"], .text > a`,
		Timestamp:         `[class*="head-info_time"], .info`,
		ReplyButton:       `[class*="toolbar_cmt"]`,
		ShowRepliesButton: `.more`,
		CellContainer:     `.vue-recycle-scroller__item-view`,
		MainColumn:        `main`,
	}
}

// Weibo is the adapter for Weibo. Comment containers may be structured
// (a top-level reply with nested sub-replies) or flat.
type Weibo struct {
	selectors threadkit.Selectors
}

// NewWeibo creates a Weibo adapter.
func NewWeibo(opts ...PlatformOption) *Weibo {
	return &Weibo{selectors: applyOptions(DefaultWeiboSelectors(), opts)}
}

// Name returns the platform identifier.
func (w *Weibo) Name() threadkit.PlatformName {
	return threadkit.PlatformWeibo
}

// HostPatterns returns the hosts served by the adapter.
func (w *Weibo) HostPatterns() []string {
	return append([]string(nil), weiboHosts...)
}

// Selectors returns the adapter's selectors.
func (w *Weibo) Selectors() threadkit.Selectors {
	return w.selectors
}

// IsValidURL reports whether the URL is on a Weibo host.
func (w *Weibo) IsValidURL(rawURL string) bool {
	return matchHost(hostOf(rawURL), weiboHosts)
}

// IsThreadURL reports whether the URL points at a single post.
func (w *Weibo) IsThreadURL(rawURL string) bool {
	return w.IsValidURL(rawURL) && w.ExtractPostID(rawURL) != ""
}

// ExtractPostID returns the post ID from /detail/ID, /status/ID or
// /UID/ID paths.
func (w *Weibo) ExtractPostID(rawURL string) string {
	path := pathOf(rawURL)
	if m := weiboDetailPath.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	if m := weiboPostPath.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	return ""
}

// NormalizeURL maps mobile and www hosts to weibo.com and strips query and
// fragment.
func (w *Weibo) NormalizeURL(rawURL string) string {
	return normalizeURL(rawURL, weiboHosts, weiboCanonicalHost)
}

// ExtractPostIDFromElement tries ID-bearing attributes, then the primary
// post link.
func (w *Weibo) ExtractPostIDFromElement(s *goquery.Selection) string {
	if id := idFromAttributes(s, weiboIDAttributes); id != "" {
		return id
	}
	if href, ok := w.FindPrimaryPostLink(s).Attr("href"); ok {
		return w.ExtractPostID(href)
	}
	return ""
}

// HasReplies is true when nested replies are present, otherwise it reads
// the comment count from the reply button.
func (w *Weibo) HasReplies(s *goquery.Selection) *bool {
	if s.Find(weiboSubItems).Length() > 0 {
		has := true
		return &has
	}
	btn := s.Find(w.selectors.ReplyButton).First()
	if btn.Length() == 0 {
		return nil
	}
	has := nonZeroDigit.MatchString(btn.Text())
	return &has
}

// IsInlineReply reports whether a flat container sits inside a sub-reply
// list or directly follows a "more replies" control.
func (w *Weibo) IsInlineReply(s *goquery.Selection) bool {
	if s.Parent().Closest(weiboSubList).Length() > 0 {
		return true
	}
	prev := s.Prev()
	if prev.Length() == 0 || w.selectors.ShowRepliesButton == "" {
		return false
	}
	return prev.Is(w.selectors.ShowRepliesButton) || prev.Find(w.selectors.ShowRepliesButton).Length() > 0
}

// FindPrimaryPostLink returns the timestamp link of the post, ignoring
// links inside nested containers.
func (w *Weibo) FindPrimaryPostLink(s *goquery.Selection) *goquery.Selection {
	if s.Length() == 0 {
		return s
	}
	self := s.Get(0)
	return s.Find("a[href]").FilterFunction(func(_ int, a *goquery.Selection) bool {
		if !a.Is(w.selectors.Timestamp) && a.Find(w.selectors.Timestamp).Length() == 0 {
			return false
		}
		if w.ExtractPostID(a.AttrOr("href", "")) == "" {
			return false
		}
		owner := a.Closest(w.selectors.PostContainer)
		return owner.Length() > 0 && owner.Get(0) == self
	}).First()
}

// GetPostURL returns the canonical URL of the post, or "".
func (w *Weibo) GetPostURL(s *goquery.Selection) string {
	href, ok := w.FindPrimaryPostLink(s).Attr("href")
	if !ok {
		return ""
	}
	abs := absoluteURL("https://"+weiboCanonicalHost+"/", href)
	if abs == "" {
		return ""
	}
	return w.NormalizeURL(abs)
}

// CleanText strips translation labels, reply counts, embedded timestamps
// and location suffixes.
func (w *Weibo) CleanText(raw string) string {
	return cleanWeiboText(raw)
}

// ExtractStructured expands a comment block into the top-level reply and
// its sub-replies. Sub-entries that only announce a reply count are
// dropped.
func (w *Weibo) ExtractStructured(container *goquery.Selection) ([]StructuredEntry, bool) {
	top := container.Find(weiboTopItem).First()
	if top.Length() == 0 {
		return nil, false
	}

	entries := []StructuredEntry{w.structuredEntry(top)}

	container.Find(weiboSubItems).Each(func(_ int, item *goquery.Selection) {
		entry := w.structuredEntry(item)
		if entry.Text == "" && isReplyCountMarker(stripAuthorPrefix(item.Find(weiboItemText).First().Text(), entry.Author)) {
			return
		}
		entry.InlineReply = true
		entries = append(entries, entry)
	})

	if len(entries) > 1 {
		has := true
		entries[0].HasReplies = &has
	}
	return entries, true
}

func (w *Weibo) structuredEntry(item *goquery.Selection) StructuredEntry {
	text := item.Find(weiboItemText).First()
	author := strings.TrimSpace(text.Find("a").First().Text())
	body := stripAuthorPrefix(text.Text(), author)

	return StructuredEntry{
		Node:      item,
		ID:        idFromAttributes(item, weiboIDAttributes),
		Text:      w.CleanText(body),
		Author:    author,
		Timestamp: weiboDisplayTime.FindString(item.Find(weiboItemInfo).First().Text()),
	}
}

// idFromAttributes returns the first run of five or more digits found in
// the given attributes, checked in order.
func idFromAttributes(s *goquery.Selection, attrs []string) string {
	for _, attr := range attrs {
		if v, ok := s.Attr(attr); ok {
			if id := numericID.FindString(v); id != "" {
				return id
			}
		}
	}
	return ""
}
