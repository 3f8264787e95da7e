package yaml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/threadkit"
	"github.com/fwojciec/threadkit/goquery"
	"github.com/fwojciec/threadkit/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSelectors(t *testing.T) {
	t.Parallel()

	t.Run("decodes partial overrides per platform", func(t *testing.T) {
		t.Parallel()

		src := `
twitter:
  postText: 'div.tweet-body'
weibo:
  postContainer: 'div.comment'
  timestamp: 'span.time'
`
		overrides, err := yaml.LoadSelectors(strings.NewReader(src))

		require.NoError(t, err)
		assert.Equal(t, threadkit.Selectors{PostText: "div.tweet-body"}, overrides[threadkit.PlatformTwitter])
		assert.Equal(t, threadkit.Selectors{
			PostContainer: "div.comment",
			Timestamp:     "span.time",
		}, overrides[threadkit.PlatformWeibo])
	})

	t.Run("empty document yields no overrides", func(t *testing.T) {
		t.Parallel()

		overrides, err := yaml.LoadSelectors(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, overrides)
	})

	t.Run("rejects unknown platform", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadSelectors(strings.NewReader("mastodon:\n  postText: p\n"))

		require.Error(t, err)
		assert.Equal(t, threadkit.EINVALID, threadkit.ErrorCode(err))
		assert.Contains(t, threadkit.ErrorMessage(err), "mastodon")
	})

	t.Run("rejects unknown selector field", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadSelectors(strings.NewReader("twitter:\n  bodyText: p\n"))

		require.Error(t, err)
		assert.Equal(t, threadkit.EINVALID, threadkit.ErrorCode(err))
	})

	t.Run("overrides reach the registry", func(t *testing.T) {
		t.Parallel()

		overrides, err := yaml.LoadSelectors(strings.NewReader("weibo:\n  postText: '.custom'\n"))
		require.NoError(t, err)

		registry := goquery.NewDefaultRegistry(overrides)
		sel := registry.Get(threadkit.PlatformWeibo).Selectors()

		assert.Equal(t, ".custom", sel.PostText)
		assert.Equal(t, goquery.DefaultWeiboSelectors().PostContainer, sel.PostContainer)
	})
}

func TestLoadSelectorsFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file from disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "selectors.yaml")
		require.NoError(t, os.WriteFile(path, []byte("twitter:\n  authorName: 'a.handle'\n"), 0o600))

		overrides, err := yaml.LoadSelectorsFile(path)

		require.NoError(t, err)
		assert.Equal(t, "a.handle", overrides[threadkit.PlatformTwitter].AuthorName)
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadSelectorsFile(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})
}
