package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/threadkit"
)

var _ Platform = (*Twitter)(nil)

const twitterCanonicalHost = "x.com"

var twitterHosts = []string{
	"x.com",
	"www.x.com",
	"mobile.x.com",
	"twitter.com",
	"www.twitter.com",
	"mobile.twitter.com",
}

var (
	twitterStatusPath = regexp.MustCompile(`^/(?:[A-Za-z0-9_]{1,15}|i/web)/status/(\d+)`)
	twitterStatusID   = regexp.MustCompile(`/status(?:es)?/(\d+)`)
	numericID         = regexp.MustCompile(`\d{5,}`)
	nonZeroDigit      = regexp.MustCompile(`[1-9]`)
)

// twitterIDAttributes are checked in order for an embedded numeric post ID.
var twitterIDAttributes = []string{"data-tweet-id", "data-item-id", "data-post-id", "id"}

// DefaultTwitterSelectors returns the selectors for X (Twitter) markup.
func DefaultTwitterSelectors() threadkit.Selectors {
	return threadkit.Selectors{
		PostContainer: `article[data-testid="tweet"]`,
		PostText:      `[data-testid="tweetText"]`,
		AuthorName:    `[data-testid="User-Name"] a`,
		Timestamp:     `time`,
		ReplyButton:   `[data-testid="reply"]`,
		ShowRepliesButton: `[role="button"]:contains("Show replies"), ` +
			`[role="button"]:contains("Show more replies"), ` +
			`button:contains("Show replies"), ` +
			`button:contains("Show more replies")`,
		CellContainer: `[data-testid="cellInnerDiv"]`,
		MainColumn:    `[data-testid="primaryColumn"]`,
	}
}

// Twitter is the adapter for X (Twitter). Posts are a flat list of
// independent containers.
type Twitter struct {
	selectors threadkit.Selectors
}

// NewTwitter creates a Twitter adapter.
func NewTwitter(opts ...PlatformOption) *Twitter {
	return &Twitter{selectors: applyOptions(DefaultTwitterSelectors(), opts)}
}

// Name returns the platform identifier.
func (t *Twitter) Name() threadkit.PlatformName {
	return threadkit.PlatformTwitter
}

// HostPatterns returns the hosts served by the adapter.
func (t *Twitter) HostPatterns() []string {
	return append([]string(nil), twitterHosts...)
}

// Selectors returns the adapter's selectors.
func (t *Twitter) Selectors() threadkit.Selectors {
	return t.selectors
}

// IsValidURL reports whether the URL is on an X or Twitter host.
func (t *Twitter) IsValidURL(rawURL string) bool {
	return matchHost(hostOf(rawURL), twitterHosts)
}

// IsThreadURL reports whether the URL points at a single status.
func (t *Twitter) IsThreadURL(rawURL string) bool {
	return t.IsValidURL(rawURL) && twitterStatusPath.MatchString(pathOf(rawURL))
}

// ExtractPostID returns the status ID in the URL, which may be relative.
func (t *Twitter) ExtractPostID(rawURL string) string {
	m := twitterStatusID.FindStringSubmatch(pathOf(rawURL))
	if m == nil {
		return ""
	}
	return m[1]
}

// NormalizeURL maps twitter.com and mobile hosts to x.com and strips query
// and fragment.
func (t *Twitter) NormalizeURL(rawURL string) string {
	return normalizeURL(rawURL, twitterHosts, twitterCanonicalHost)
}

// ExtractPostIDFromElement tries ID-bearing attributes, then the primary
// post link, then any status link inside the element.
func (t *Twitter) ExtractPostIDFromElement(s *goquery.Selection) string {
	if id := idFromAttributes(s, twitterIDAttributes); id != "" {
		return id
	}

	if href, ok := t.FindPrimaryPostLink(s).Attr("href"); ok {
		if id := t.ExtractPostID(href); id != "" {
			return id
		}
	}

	var id string
	s.Find(`a[href*="/status/"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		id = t.ExtractPostID(a.AttrOr("href", ""))
		return id == ""
	})
	return id
}

// HasReplies reads the reply count from the reply button. A missing button
// means the state is unknown.
func (t *Twitter) HasReplies(s *goquery.Selection) *bool {
	btn := s.Find(t.selectors.ReplyButton).First()
	if btn.Length() == 0 {
		return nil
	}
	count := strings.TrimSpace(btn.Text())
	if count == "" {
		count = btn.AttrOr("aria-label", "")
	}
	has := nonZeroDigit.MatchString(count)
	return &has
}

// IsInlineReply reports whether the preceding sibling of the post, or of
// its enclosing cell when the post has none, holds a "show replies"
// affordance.
func (t *Twitter) IsInlineReply(s *goquery.Selection) bool {
	prev := s.Prev()
	if prev.Length() == 0 && t.selectors.CellContainer != "" {
		prev = s.Parent().Closest(t.selectors.CellContainer).Prev()
	}
	if prev.Length() == 0 {
		return false
	}
	return prev.Is(t.selectors.ShowRepliesButton) || prev.Find(t.selectors.ShowRepliesButton).Length() > 0
}

// FindPrimaryPostLink returns the status link wrapping the post's timestamp.
// Links whose closest post container is not s belong to nested quoted posts
// and are ignored.
func (t *Twitter) FindPrimaryPostLink(s *goquery.Selection) *goquery.Selection {
	if s.Length() == 0 {
		return s
	}
	self := s.Get(0)
	return s.Find(`a[href*="/status/"]`).FilterFunction(func(_ int, a *goquery.Selection) bool {
		if a.Find("time").Length() == 0 {
			return false
		}
		owner := a.Closest(t.selectors.PostContainer)
		return owner.Length() > 0 && owner.Get(0) == self
	}).First()
}

// GetPostURL returns the canonical URL of the post, or "".
func (t *Twitter) GetPostURL(s *goquery.Selection) string {
	href, ok := t.FindPrimaryPostLink(s).Attr("href")
	if !ok {
		return ""
	}
	abs := absoluteURL("https://"+twitterCanonicalHost+"/", href)
	if abs == "" {
		return ""
	}
	return t.NormalizeURL(abs)
}
