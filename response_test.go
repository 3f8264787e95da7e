package threadkit_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/threadkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	t.Parallel()

	t.Run("wraps posts and url", func(t *testing.T) {
		t.Parallel()

		result := &threadkit.ExtractResult{
			URL:   "https://x.com/a/status/123456",
			Posts: []*threadkit.Post{{ID: "123456"}},
		}

		resp := threadkit.NewResponse(result)

		assert.True(t, resp.Success)
		assert.Equal(t, "https://x.com/a/status/123456", resp.URL)
		assert.Len(t, resp.Posts, 1)
		assert.Empty(t, resp.Error)
	})

	t.Run("uses empty slice for no posts", func(t *testing.T) {
		t.Parallel()

		resp := threadkit.NewResponse(&threadkit.ExtractResult{})

		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Posts)
		assert.Empty(t, resp.Posts)
	})
}

func TestFailureResponse(t *testing.T) {
	t.Parallel()

	t.Run("uses application error message", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("extract: %w", threadkit.Errorf(threadkit.EINVALID, "bad selector"))

		resp := threadkit.FailureResponse("https://x.com", err)

		assert.False(t, resp.Success)
		assert.Equal(t, "bad selector", resp.Error)
		assert.Equal(t, "https://x.com", resp.URL)
		assert.Nil(t, resp.Posts)
	})

	t.Run("uses full text for other errors", func(t *testing.T) {
		t.Parallel()

		resp := threadkit.FailureResponse("https://x.com", errors.New("HTTP 500"))

		assert.False(t, resp.Success)
		assert.Equal(t, "HTTP 500", resp.Error)
	})

	t.Run("uses message of internal application errors", func(t *testing.T) {
		t.Parallel()

		err := threadkit.Errorf(threadkit.EINTERNAL, "extraction panicked: boom")

		resp := threadkit.FailureResponse("https://x.com", err)

		assert.Equal(t, "extraction panicked: boom", resp.Error)
	})
}

func TestResponse_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("success without posts encodes empty array", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(threadkit.NewResponse(&threadkit.ExtractResult{URL: "https://x.com/a/status/123456"}))

		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"posts":[],"url":"https://x.com/a/status/123456"}`, string(b))
	})

	t.Run("success with nil posts encodes empty array", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(threadkit.Response{Success: true})

		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"posts":[]}`, string(b))
	})

	t.Run("failure omits posts", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(threadkit.FailureResponse("https://x.com", errors.New("HTTP 500")))

		require.NoError(t, err)
		assert.JSONEq(t, `{"success":false,"url":"https://x.com","error":"HTTP 500"}`, string(b))
	})

	t.Run("round trips posts", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(threadkit.NewResponse(&threadkit.ExtractResult{Posts: []*threadkit.Post{{ID: "123456"}}}))
		require.NoError(t, err)

		var got threadkit.Response
		require.NoError(t, json.Unmarshal(b, &got))
		require.Len(t, got.Posts, 1)
		assert.Equal(t, "123456", got.Posts[0].ID)
	})
}
