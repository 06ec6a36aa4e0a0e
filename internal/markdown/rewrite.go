package markdown

import (
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// linkTransformer rewrites link destinations in place before rendering.
// The tree it walks belongs to a single Convert call.
type linkTransformer struct {
	rewrite LinkRewriter
}

func (t *linkTransformer) Transform(doc *gmast.Document, _ text.Reader, _ parser.Context) {
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if link, ok := n.(*gmast.Link); ok {
			link.Destination = []byte(t.rewrite(string(link.Destination)))
		}
		return gmast.WalkContinue, nil
	})
}
