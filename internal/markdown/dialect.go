package markdown

import "git.home.luguber.info/inful/docdoc/internal/foundation/normalization"

// Dialect selects the Markdown rule set used to render a body.
type Dialect string

const (
	// CommonMark is plain CommonMark with tables.
	CommonMark Dialect = "commonmark"
	// GitHubFlavored adds strikethrough, autolinks, task lists and superscript.
	GitHubFlavored Dialect = "gfm"
)

var dialectNormalizer = normalization.NewNormalizer("dialect", map[string]Dialect{
	"commonmark":     CommonMark,
	"cm":             CommonMark,
	"gfm":            GitHubFlavored,
	"github":         GitHubFlavored,
	"githubflavored": GitHubFlavored,
}, CommonMark)

// ParseDialect accepts the usual spellings; an empty string selects CommonMark.
func ParseDialect(raw string) (Dialect, error) {
	return dialectNormalizer.Parse(raw)
}

// Dialects lists the accepted spellings for help text.
func Dialects() []string {
	return dialectNormalizer.ValidKeys()
}

func (d Dialect) String() string { return string(d) }
