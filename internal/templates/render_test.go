package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/doctags/internal/foundation/errors"
	"git.home.luguber.info/inful/doctags/internal/frontmatter"
	"git.home.luguber.info/inful/doctags/internal/metadata"
	"git.home.luguber.info/inful/doctags/internal/taxonomy"
)

func grouping(t *testing.T, category string, docs map[string]string, order ...string) *taxonomy.Grouping {
	t.Helper()
	recs := make([]*metadata.Record, 0, len(order))
	for _, name := range order {
		rec, err := frontmatter.Read("---\n"+docs[name]+"---\n", name)
		require.NoError(t, err)
		recs = append(recs, rec)
	}
	g, err := taxonomy.Aggregate(recs, category)
	require.NoError(t, err)
	return g
}

func TestRender_DefaultTemplate(t *testing.T) {
	g := grouping(t, "tags", map[string]string{
		"a.md": "title: A\ntags: [x, y]\nyear: 2020\n",
		"b.md": "tags: [x]\n",
		"c.md": "title: C\n",
	}, "a.md", "b.md", "c.md")

	out, err := NewRenderer("").Render(g, "tags")
	require.NoError(t, err)

	want := "---\ntitle: Tags\n---\n\n# Tags\n" +
		"\n## <span class=\"tag\">x</span>\n\n  * [A](a.md)\n  * [Untitled](b.md)\n" +
		"\n## <span class=\"tag\">y</span>\n\n  * [A](a.md)\n"
	require.Equal(t, want, out)
}

func TestRender_DefaultTemplate_MarkdownStructure(t *testing.T) {
	g := grouping(t, "topics", map[string]string{
		"net/tcp.md":  "title: TCP\ntopics: [Networking, go]\nyear: 2019\n",
		"lang/gc.md":  "title: GC\ntopics: [Go]\nyear: 2018\n",
		"lang/gen.md": "title: Generics\ntopics: [go, Networking]\n",
	}, "net/tcp.md", "lang/gc.md", "lang/gen.md")

	out, err := NewRenderer("").Render(g, "topics")
	require.NoError(t, err)

	_, ok := frontmatter.Extract(out)
	require.True(t, ok)
	body := out[strings.Index(out, "\n---\n")+len("\n---\n"):]

	src := []byte(body)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var headings []int
	var links []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			headings = append(headings, node.Level)
		case *gmast.Link:
			links = append(links, string(node.Destination))
		}
		return gmast.WalkContinue, nil
	})

	// go and Go are distinct tags; Go was seen first (gc sorts before tcp by year).
	require.Equal(t, []int{1, 2, 2, 2}, headings)
	require.Equal(t, []string{"lang/gc.md", "net/tcp.md", "lang/gen.md", "net/tcp.md", "lang/gen.md"}, links)
}

func TestRender_EmptyGroupingProducesPage(t *testing.T) {
	g := grouping(t, "authors", map[string]string{"a.md": "title: A\n"}, "a.md")

	out, err := NewRenderer("").Render(g, "authors")
	require.NoError(t, err)
	require.Equal(t, "---\ntitle: Authors\n---\n\n# Authors\n", out)
}

func TestRender_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.md.tmpl")
	tpl := "{{ .tagname }}|{{ .title }}{{ range .tags }}|{{ .Name }}:{{ range .Docs }}{{ .Title }}({{ .Year }}){{ end }}{{ end }}"
	require.NoError(t, os.WriteFile(path, []byte(tpl), 0o600))

	g := grouping(t, "tags", map[string]string{
		"a.md": "title: A\ntags: [Beta, alpha]\nyear: 2020\n",
	}, "a.md")

	r := NewRenderer(path)
	require.Equal(t, "custom.md.tmpl", r.TemplateName())

	out, err := r.Render(g, "tags")
	require.NoError(t, err)
	require.Equal(t, "tags|Tags|alpha:A(2020)|Beta:A(2020)", out)
}

func TestRender_CustomTemplateHelpers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "helpers.tmpl")
	tpl := `{{ upper .tagname }} {{ capitalize "hELLO" }} {{ range .tags }}{{ range .Docs }}{{ .Get "author" }}{{ end }}{{ end }}`
	require.NoError(t, os.WriteFile(path, []byte(tpl), 0o600))

	g := grouping(t, "tags", map[string]string{"a.md": "author: ann\ntags: [x]\n"}, "a.md")

	out, err := NewRenderer(path).Render(g, "tags")
	require.NoError(t, err)
	require.Equal(t, "TAGS Hello ann", out)
}

func TestRender_MissingCustomTemplateIsTemplateError(t *testing.T) {
	g := grouping(t, "tags", map[string]string{})

	_, err := NewRenderer(filepath.Join(t.TempDir(), "missing.tmpl")).Render(g, "tags")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryTemplate))
}

func TestRender_UndefinedReferencesFail(t *testing.T) {
	g := grouping(t, "tags", map[string]string{"a.md": "tags: [x]\n"}, "a.md")

	cases := map[string]string{
		"context key":   "{{ .nope }}",
		"record method": "{{ range .tags }}{{ range .Docs }}{{ .Author }}{{ end }}{{ end }}",
		"record field":  `{{ range .tags }}{{ range .Docs }}{{ .Get "author" }}{{ end }}{{ end }}`,
		"unknown func":  "{{ shout .title }}",
		"syntax":        "{{ range .tags }}",
	}
	for name, tpl := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.tmpl")
			require.NoError(t, os.WriteFile(path, []byte(tpl), 0o600))

			_, err := NewRenderer(path).Render(g, "tags")
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryTemplate))
		})
	}
}

type stubEngine struct {
	name string
	data any
}

func (s *stubEngine) Render(name string, data any) (string, error) {
	s.name = name
	s.data = data
	return "ok", nil
}

func TestRender_PassesContextToEngine(t *testing.T) {
	g := grouping(t, "tags", map[string]string{"a.md": "tags: [b, A]\n"}, "a.md")
	engine := &stubEngine{}

	out, err := NewRendererWithEngine(engine, "page").Render(g, "tags")
	require.NoError(t, err)
	require.Equal(t, "ok", out)
	require.Equal(t, "page", engine.name)

	data, ok := engine.data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "tags", data[KeyTagName])
	require.Equal(t, "Tags", data[KeyTitle])

	groups, ok := data[KeyTags].([]taxonomy.TagGroup)
	require.True(t, ok)
	require.Len(t, groups, 2)
	require.Equal(t, "A", groups[0].Name)
	require.Equal(t, "b", groups[1].Name)
}

func TestNewEngine(t *testing.T) {
	engine, name := NewEngine("")
	require.IsType(t, &BuiltinEngine{}, engine)
	require.Equal(t, DefaultTemplate, name)

	engine, name = NewEngine(filepath.Join("site", "templates", "tags.tmpl"))
	fe, ok := engine.(*FileEngine)
	require.True(t, ok)
	require.Equal(t, filepath.Join("site", "templates"), fe.Dir)
	require.Equal(t, "tags.tmpl", name)
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"tags":    "Tags",
		"TAGS":    "Tags",
		"authors": "Authors",
		"éditeur": "Éditeur",
		"2024":    "2024",
	}
	for in, want := range cases {
		require.Equal(t, want, Capitalize(in), in)
	}
}
