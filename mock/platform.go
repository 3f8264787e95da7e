package mock

import (
	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/threadkit"
	"github.com/fwojciec/threadkit/goquery"
)

var _ goquery.Platform = (*Platform)(nil)

// Platform is a mock implementation of goquery.Platform.
// Methods without a function set return zero values.
type Platform struct {
	NameFn                     func() threadkit.PlatformName
	SelectorsFn                func() threadkit.Selectors
	IsValidURLFn               func(rawURL string) bool
	IsThreadURLFn              func(rawURL string) bool
	ExtractPostIDFn            func(rawURL string) string
	NormalizeURLFn             func(rawURL string) string
	ExtractPostIDFromElementFn func(s *gq.Selection) string
	HasRepliesFn               func(s *gq.Selection) *bool
	IsInlineReplyFn            func(s *gq.Selection) bool
	GetPostURLFn               func(s *gq.Selection) string
}

func (p *Platform) Name() threadkit.PlatformName {
	return p.NameFn()
}

func (p *Platform) HostPatterns() []string {
	return nil
}

func (p *Platform) Selectors() threadkit.Selectors {
	if p.SelectorsFn == nil {
		return threadkit.Selectors{}
	}
	return p.SelectorsFn()
}

func (p *Platform) IsValidURL(rawURL string) bool {
	if p.IsValidURLFn == nil {
		return false
	}
	return p.IsValidURLFn(rawURL)
}

func (p *Platform) IsThreadURL(rawURL string) bool {
	if p.IsThreadURLFn == nil {
		return false
	}
	return p.IsThreadURLFn(rawURL)
}

func (p *Platform) ExtractPostID(rawURL string) string {
	if p.ExtractPostIDFn == nil {
		return ""
	}
	return p.ExtractPostIDFn(rawURL)
}

func (p *Platform) NormalizeURL(rawURL string) string {
	if p.NormalizeURLFn == nil {
		return rawURL
	}
	return p.NormalizeURLFn(rawURL)
}

func (p *Platform) ExtractPostIDFromElement(s *gq.Selection) string {
	if p.ExtractPostIDFromElementFn == nil {
		return ""
	}
	return p.ExtractPostIDFromElementFn(s)
}

func (p *Platform) HasReplies(s *gq.Selection) *bool {
	if p.HasRepliesFn == nil {
		return nil
	}
	return p.HasRepliesFn(s)
}

func (p *Platform) IsInlineReply(s *gq.Selection) bool {
	if p.IsInlineReplyFn == nil {
		return false
	}
	return p.IsInlineReplyFn(s)
}

func (p *Platform) FindPrimaryPostLink(s *gq.Selection) *gq.Selection {
	return s.Find("a[data-primary]").First()
}

func (p *Platform) GetPostURL(s *gq.Selection) string {
	if p.GetPostURLFn == nil {
		return ""
	}
	return p.GetPostURLFn(s)
}
