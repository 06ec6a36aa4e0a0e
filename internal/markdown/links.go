package markdown

import (
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/docdoc/internal/pathmap"
)

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link-like construct found in a body. Rewritten is the destination
// Render would emit; it equals Destination for anything but inline links.
type Link struct {
	Kind        LinkKind `yaml:"kind"`
	Destination string   `yaml:"destination"`
	Rewritten   string   `yaml:"rewritten"`
}

// ExtractLinks parses a Markdown body and lists its links in document order,
// followed by reference definitions sorted by label.
//
// This is an analysis API; it does not render.
func ExtractLinks(body []byte, dialect Dialect) ([]Link, error) {
	exts, err := extensionsFor(dialect)
	if err != nil {
		return nil, err
	}
	md := goldmark.New(goldmark.WithExtensions(exts...))
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			dest := string(node.URL(body))
			links = append(links, Link{Kind: LinkKindAuto, Destination: dest, Rewritten: dest})
		case *gmast.Image:
			dest := string(node.Destination)
			links = append(links, Link{Kind: LinkKindImage, Destination: dest, Rewritten: dest})
		case *gmast.Link:
			// Reference-style links resolve to Link nodes too, so they are rewritten as well.
			dest := string(node.Destination)
			links = append(links, Link{Kind: LinkKindInline, Destination: dest, Rewritten: pathmap.RewriteLink(dest)})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions live in the parse context, not in the tree.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		dest := string(ref.Destination())
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: dest, Rewritten: dest})
	}

	return links, nil
}
