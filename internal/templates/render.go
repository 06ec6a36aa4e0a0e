// Package templates renders theme page templates.
//
// Templates use Django syntax via pongo2 and are loaded from a theme's
// templates directory. Output is not autoescaped: document bodies are
// trusted HTML produced by the Markdown renderer.
package templates

import (
	stderrors "errors"
	"fmt"

	"github.com/flosch/pongo2/v6"

	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
)

// ErrRender is wrapped by every template failure.
var ErrRender = stderrors.New("template render failed")

func init() {
	pongo2.SetAutoescape(false)
}

// Renderer renders the named template with data.
type Renderer interface {
	Render(name string, data map[string]any) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(name string, data map[string]any) (string, error)

func (f RendererFunc) Render(name string, data map[string]any) (string, error) {
	return f(name, data)
}

// Pongo2Renderer renders templates from one directory. Parsed templates are
// cached, so a renderer lives as long as the theme it was built for.
type Pongo2Renderer struct {
	dir string
	set *pongo2.TemplateSet
}

// NewPongo2Renderer loads templates from dir.
func NewPongo2Renderer(dir string) (*Pongo2Renderer, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return nil, errors.WrapError(fmt.Errorf("%w: %w", ErrRender, err), errors.CategoryRender, "cannot open template directory").
			WithContext("path", dir).
			Build()
	}
	return &Pongo2Renderer{dir: dir, set: pongo2.NewSet("docdoc", loader)}, nil
}

// Render executes template name against data.
func (r *Pongo2Renderer) Render(name string, data map[string]any) (string, error) {
	tpl, err := r.set.FromCache(name)
	if err != nil {
		return "", renderError(name, "cannot load template", err)
	}

	out, err := tpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", renderError(name, "cannot execute template", err)
	}
	return out, nil
}

func renderError(name, msg string, cause error) error {
	return errors.WrapError(fmt.Errorf("%w: %w", ErrRender, cause), errors.CategoryRender, msg).
		WithContext("template", name).
		Build()
}
