package goquery

import (
	"regexp"
	"strings"
)

var (
	weiboTranslationLabel = regexp.MustCompile(`(?i)(?:\s*(?:查看翻译|显示原文)|(?:^|\s+)(?:see translation|translate post|show original))\s*$`)
	weiboReplyCount       = regexp.MustCompile(`(?i)(?:\s*共\s*\d+\s*条回复\s*>?|(?:^|\s+)\d+\s*条回复|(?:^|\s+)\d+\s+total\s+replies|^\s*\d+\s+replies)\s*$`)
	weiboTimestamp        = regexp.MustCompile(`(?:\d{2,4}-)?\d{1,2}-\d{1,2}\s+\d{1,2}:\d{2}`)
	weiboDisplayTime      = regexp.MustCompile(`\d{1,2}-\d{1,2}\s+\d{1,2}:\d{2}`)
	weiboLocation         = regexp.MustCompile(`(?i)\s*(?:来自\s*\S+|from\s+\S+)\s*$`)
	weiboReplyMarker      = regexp.MustCompile(`(?i)^\s*(?:共\s*\d+\s*条回复\s*>?|\d+\s+(?:total\s+)?replies)\s*$`)
	whitespaceRun         = regexp.MustCompile(`\s+`)
)

// weiboCleanup is applied in order to every piece of Weibo post text.
// Labels and counts are only removed as trailing UI segments, never from
// inside a sentence.
var weiboCleanup = []func(string) string{
	func(s string) string { return weiboTranslationLabel.ReplaceAllString(s, "") },
	func(s string) string { return weiboReplyCount.ReplaceAllString(s, "") },
	func(s string) string { return weiboTimestamp.ReplaceAllString(s, "") },
	func(s string) string { return weiboLocation.ReplaceAllString(s, "") },
	func(s string) string { return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " ")) },
}

func cleanWeiboText(raw string) string {
	s := raw
	for _, step := range weiboCleanup {
		s = step(s)
	}
	return s
}

// stripAuthorPrefix removes a leading "author:" or "author：" from text.
func stripAuthorPrefix(text, author string) string {
	text = strings.TrimSpace(text)
	if author == "" || !strings.HasPrefix(text, author) {
		return text
	}
	rest := strings.TrimSpace(strings.TrimPrefix(text, author))
	for _, colon := range []string{":", "："} {
		if strings.HasPrefix(rest, colon) {
			return strings.TrimSpace(strings.TrimPrefix(rest, colon))
		}
	}
	return text
}

// isReplyCountMarker reports whether text only announces the number of
// replies, e.g. "共12条回复".
func isReplyCountMarker(text string) bool {
	return weiboReplyMarker.MatchString(text)
}
