package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinks_Kinds(t *testing.T) {
	src := []byte("See [API](api.md), ![Diagram](img/d.png) and <https://example.com/x>.\n\n" +
		"Ref [b][z] and [a][y].\n\n[z]: b.md\n[y]: a.md\n")

	links := ExtractLinks(src)
	require.Equal(t, []Link{
		{Kind: LinkKindInline, Destination: "api.md"},
		{Kind: LinkKindImage, Destination: "img/d.png"},
		{Kind: LinkKindAuto, Destination: "https://example.com/x"},
		{Kind: LinkKindInline, Destination: "b.md"},
		{Kind: LinkKindInline, Destination: "a.md"},
		{Kind: LinkKindReferenceDefinition, Destination: "a.md"},
		{Kind: LinkKindReferenceDefinition, Destination: "b.md"},
	}, links)
}

func TestExtractLinks_SkipsCode(t *testing.T) {
	src := []byte("Inline `[L](./inline.md)`\n\n```\n[L](./fence.md)\n```\n\nReal: [OK](./real.md)\n")
	links := ExtractLinks(src)
	require.Len(t, links, 1)
	require.Equal(t, "./real.md", links[0].Destination)
}

func TestLocalTarget(t *testing.T) {
	tests := []struct {
		dest   string
		target string
		ok     bool
	}{
		{"a.md", "a.md", true},
		{"guide/run.md#flags", "guide/run.md", true},
		{"my%20page.md?x=1", "my page.md", true},
		{"https://example.com/a.md", "", false},
		{"mailto:me@example.com", "", false},
		{"/abs/a.md", "", false},
		{"#section", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			target, ok := LocalTarget(tt.dest)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.target, target)
		})
	}
}

func TestUnresolved(t *testing.T) {
	known := map[string]bool{"a.md": true, "guide/run.md": true}
	exists := func(p string) bool { return known[p] }

	links := ExtractLinks([]byte("[A](a.md) [R](guide/run.md#x) [M](missing.md) [W](https://x.org/y.md) <https://x.org>\n"))
	require.Equal(t, []string{"missing.md"}, Unresolved(links, ".", exists))

	nested := ExtractLinks([]byte("[A](../a.md) [R](run.md)\n"))
	require.Empty(t, Unresolved(nested, "guide", exists))
}
