// Package templates renders tag listing pages.
//
// Pages are rendered with Go's text/template engine. A bundled default
// template is used unless the configuration names a template file.
package templates

import (
	"git.home.luguber.info/inful/doctags/internal/foundation/errors"
	"git.home.luguber.info/inful/doctags/internal/taxonomy"
)

// Context keys available to tag page templates.
const (
	KeyTags    = "tags"
	KeyTagName = "tagname"
	KeyTitle   = "title"
)

// Renderer renders the listing page of one tag category.
type Renderer struct {
	engine Engine
	name   string
}

// NewRenderer returns a renderer using the template at customPath, or the
// bundled default when customPath is empty.
func NewRenderer(customPath string) *Renderer {
	engine, name := NewEngine(customPath)
	return &Renderer{engine: engine, name: name}
}

// NewRendererWithEngine returns a renderer for an explicit engine and template name.
func NewRendererWithEngine(engine Engine, name string) *Renderer {
	return &Renderer{engine: engine, name: name}
}

// TemplateName returns the template the renderer uses.
func (r *Renderer) TemplateName() string { return r.name }

// Render renders the page for g. The output is returned verbatim.
func (r *Renderer) Render(g *taxonomy.Grouping, category string) (string, error) {
	out, err := r.engine.Render(r.name, PageContext(g, category))
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryTemplate, "cannot render tag page").
			Fatal().
			WithContext("template", r.name).
			WithContext("category", category).
			Build()
	}
	return out, nil
}

// PageContext builds the template data for a category page.
func PageContext(g *taxonomy.Grouping, category string) map[string]any {
	groups := []taxonomy.TagGroup{}
	if g != nil {
		groups = g.Sorted()
	}
	return map[string]any{
		KeyTags:    groups,
		KeyTagName: category,
		KeyTitle:   Capitalize(category),
	}
}
