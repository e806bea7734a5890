package output

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

//nolint:gochecknoglobals // Compiled once.
var (
	youtubeEmbedPattern = regexp.MustCompile(`^(?:https?:)?//www\.youtube\.com/embed/[\w\-]+$`)
	fontSizePattern     = regexp.MustCompile(`^[1-7]$`)
	hexColorPattern     = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	listTypePattern     = regexp.MustCompile(`^[1aAiI]$`)
	classNamePattern    = regexp.MustCompile(`^[\w\- ]+$`)
)

// Policy returns a sanitizing policy that keeps exactly the markup the
// built-in rules produce and drops everything else.
func Policy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()

	policy.AllowElements(
		"strong", "em", "u", "strike",
		"blockquote", "small", "sub", "sup",
		"ol", "ul", "li", "br", "div", "code",
	)

	policy.AllowAttrs("size").Matching(fontSizePattern).OnElements("font")
	policy.AllowAttrs("color").Matching(hexColorPattern).OnElements("font")
	policy.AllowAttrs("face").Matching(bluemonday.Paragraph).OnElements("font")

	policy.AllowStyles("text-align").MatchingEnum("left", "center", "right").OnElements("div")

	policy.AllowStandardURLs()
	policy.AllowRelativeURLs(true)
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireNoFollowOnLinks(true)

	policy.AllowAttrs("src", "data-original").OnElements("img")
	policy.AllowAttrs("class").Matching(classNamePattern).OnElements("img", "code")

	policy.AllowAttrs("type").Matching(listTypePattern).OnElements("ol")

	policy.AllowAttrs("src").Matching(youtubeEmbedPattern).OnElements("iframe")
	policy.AllowAttrs("width", "height").Matching(bluemonday.Integer).OnElements("iframe")
	policy.AllowAttrs("frameborder").Matching(bluemonday.Integer).OnElements("iframe")
	policy.AllowAttrs("allowfullscreen").OnElements("iframe")

	return policy
}
