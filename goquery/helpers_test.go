package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// parse builds a document from an HTML fragment.
func parse(t *testing.T, html string) *gq.Document {
	t.Helper()

	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// tweet renders one X timeline cell with a primary status link.
func tweet(handle, id, text string) string {
	return `<div data-testid="cellInnerDiv"><div><article data-testid="tweet">` +
		`<div data-testid="User-Name"><a href="/` + handle + `">` + handle + `</a>` +
		`<a href="/` + handle + `/status/` + id + `"><time datetime="2024-05-01T10:00:00.000Z">May 1</time></a></div>` +
		`<div data-testid="tweetText">` + text + `</div>` +
		`</article></div></div>`
}

// showRepliesCell renders the "Show replies" affordance cell.
func showRepliesCell() string {
	return `<div data-testid="cellInnerDiv"><div><button role="button"><span>Show replies</span></button></div></div>`
}

// timeline wraps cells in the X primary column.
func timeline(cells ...string) string {
	return `<html><body><div data-testid="primaryColumn"><section><div>` +
		strings.Join(cells, "") +
		`</div></section></div></body></html>`
}
