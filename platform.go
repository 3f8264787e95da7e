package threadkit

// PlatformName identifies a source site variant.
type PlatformName string

// Supported platforms.
const (
	PlatformUnknown PlatformName = ""
	PlatformTwitter PlatformName = "twitter"
	PlatformWeibo   PlatformName = "weibo"
)

// Selectors holds the CSS selectors describing a platform's markup.
// Sites change their DOM frequently; these are kept in one place so they
// can be overridden from configuration.
type Selectors struct {
	PostContainer     string `yaml:"postContainer"`
	PostText          string `yaml:"postText"`
	AuthorName        string `yaml:"authorName"`
	Timestamp         string `yaml:"timestamp"`
	ReplyButton       string `yaml:"replyButton"`
	ShowRepliesButton string `yaml:"showRepliesButton"`
	CellContainer     string `yaml:"cellContainer"`
	MainColumn        string `yaml:"mainColumn"`
}

// Merge returns a copy of s with every non-empty field of override applied.
func (s Selectors) Merge(override Selectors) Selectors {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&s.PostContainer, override.PostContainer)
	merge(&s.PostText, override.PostText)
	merge(&s.AuthorName, override.AuthorName)
	merge(&s.Timestamp, override.Timestamp)
	merge(&s.ReplyButton, override.ReplyButton)
	merge(&s.ShowRepliesButton, override.ShowRepliesButton)
	merge(&s.CellContainer, override.CellContainer)
	merge(&s.MainColumn, override.MainColumn)
	return s
}

// SelectorOverrides maps platforms to partial selector sets.
type SelectorOverrides map[PlatformName]Selectors
