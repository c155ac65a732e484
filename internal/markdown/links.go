// Package markdown inspects the links of rendered markdown pages.
package markdown

import (
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

type Link struct {
	Kind        LinkKind
	Destination string
}

// ExtractLinks parses a markdown body (front matter removed) and returns its
// links in document order, followed by reference definitions sorted by label.
func ExtractLinks(body []byte) []Link {
	ctx := parser.NewContext()
	root := goldmark.New().Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	refs := ctx.References()
	slices.SortFunc(refs, func(a, b parser.Reference) int {
		return strings.Compare(string(a.Label()), string(b.Label()))
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return links
}

// LocalTarget returns the document path a link points to, relative to the
// page's directory, with query and fragment removed. ok is false for
// external URLs, absolute paths and same-page anchors.
func LocalTarget(dest string) (target string, ok bool) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	p, err := url.PathUnescape(u.Path)
	if err != nil {
		p = u.Path
	}
	if p == "" || strings.HasPrefix(p, "/") {
		return "", false
	}
	return p, true
}

// Unresolved returns the local link destinations of a page at pageDir that
// exists reports as missing. pageDir and the paths given to exists are slash
// separated and relative to the docs root.
func Unresolved(links []Link, pageDir string, exists func(string) bool) []string {
	var missing []string
	for _, l := range links {
		if l.Kind == LinkKindAuto {
			continue
		}
		target, ok := LocalTarget(l.Destination)
		if !ok {
			continue
		}
		resolved := path.Clean(path.Join(pageDir, target))
		if !exists(resolved) {
			missing = append(missing, l.Destination)
		}
	}
	return missing
}
