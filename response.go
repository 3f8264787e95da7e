package threadkit

import (
	"context"
	"encoding/json"
	"errors"
)

// Response is the envelope handed across a process boundary. Successful
// responses always carry a posts array, empty when nothing was found;
// failures omit it.
type Response struct {
	Success bool    `json:"success"`
	Posts   []*Post `json:"posts,omitempty"`
	URL     string  `json:"url,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// MarshalJSON encodes posts as [] rather than omitting them on success.
func (r Response) MarshalJSON() ([]byte, error) {
	type envelope Response
	if !r.Success {
		return json.Marshal(envelope(r))
	}
	posts := r.Posts
	if posts == nil {
		posts = []*Post{}
	}
	return json.Marshal(struct {
		envelope
		Posts []*Post `json:"posts"`
	}{envelope(r), posts})
}

// NewResponse wraps a successful extraction result.
func NewResponse(result *ExtractResult) *Response {
	posts := result.Posts
	if posts == nil {
		posts = []*Post{}
	}
	return &Response{
		Success: true,
		Posts:   posts,
		URL:     result.URL,
	}
}

// FailureResponse wraps an error. Application errors contribute their
// message; any other error contributes its full text.
func FailureResponse(url string, err error) *Response {
	msg := err.Error()
	var e *Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	return &Response{
		Success: false,
		URL:     url,
		Error:   msg,
	}
}

// ThreadScraper fetches a page and reconstructs its thread.
type ThreadScraper interface {
	// Scrape never returns an error; failures are reported in the envelope.
	Scrape(ctx context.Context, url string, opts ExtractOptions) *Response
}
