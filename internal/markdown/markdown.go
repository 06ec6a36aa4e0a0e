// Package markdown renders Markdown bodies to HTML with goldmark, rewriting
// site-rooted links to other documents on the way.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/docdoc/internal/pathmap"
)

// LinkRewriter maps a link destination to the one emitted in HTML.
type LinkRewriter func(dest string) string

// Option configures a Renderer.
type Option func(*Renderer)

// WithLinkRewriter replaces the default pathmap.RewriteLink rule.
func WithLinkRewriter(fn LinkRewriter) Option {
	return func(r *Renderer) { r.rewrite = fn }
}

// Renderer converts Markdown to HTML for one dialect. Each call parses into
// its own tree.
type Renderer struct {
	dialect Dialect
	rewrite LinkRewriter
	md      goldmark.Markdown
}

// NewRenderer builds a renderer for dialect.
//
// Both dialects share the parser core, table support, raw HTML passthrough
// and heading ids, so documents that only use the common subset render to
// identical bytes.
func NewRenderer(dialect Dialect, opts ...Option) (*Renderer, error) {
	r := &Renderer{dialect: dialect, rewrite: pathmap.RewriteLink}
	for _, opt := range opts {
		opt(r)
	}

	exts, err := extensionsFor(dialect)
	if err != nil {
		return nil, err
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(&linkTransformer{rewrite: r.rewrite}, 100)),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return r, nil
}

func extensionsFor(dialect Dialect) ([]goldmark.Extender, error) {
	switch dialect {
	case CommonMark:
		return []goldmark.Extender{extension.Table}, nil
	case GitHubFlavored:
		return []goldmark.Extender{extension.GFM, Superscript}, nil
	default:
		return nil, fmt.Errorf("unsupported markdown dialect %q", dialect)
	}
}

// Dialect returns the dialect the renderer was built for.
func (r *Renderer) Dialect() Dialect { return r.dialect }

// Render converts body (frontmatter already removed) to an HTML fragment.
func (r *Renderer) Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render %s markdown: %w", r.dialect, err)
	}
	return buf.Bytes(), nil
}

// Render is a convenience wrapper building a one-off Renderer.
func Render(body []byte, dialect Dialect) ([]byte, error) {
	r, err := NewRenderer(dialect)
	if err != nil {
		return nil, err
	}
	return r.Render(body)
}
