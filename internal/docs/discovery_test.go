package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/doctags/internal/docs/errors"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
}

func TestDiscover_LexicalOrderSkippingHidden(t *testing.T) {
	docsDir := filepath.Join(t.TempDir(), "docs")
	writeTree(t, docsDir, map[string]string{
		"index.md":           "# Home",
		"guides/b.md":        "b",
		"guides/a.md":        "a",
		"img/logo.png":       "png",
		".hidden.md":         "hidden",
		".git/config":        "git",
		"api/reference.md":   "ref",
		"guides/.draft/x.md": "draft",
	})

	files, err := Discover(docsDir, "/site", false)
	require.NoError(t, err)

	var paths []string
	for _, f := range files.All() {
		paths = append(paths, f.SrcPath)
		require.Equal(t, docsDir, f.SrcDir)
		require.Equal(t, "/site", f.DestDir)
	}
	require.Equal(t, []string{"api/reference.md", "guides/a.md", "guides/b.md", "img/logo.png", "index.md"}, paths)
	require.Len(t, files.Markdown(), 4)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), "site", false)
	require.ErrorIs(t, err, derrors.ErrDocsDirNotFound)
}

func TestFile_DestPathAndURL(t *testing.T) {
	cases := []struct {
		src      string
		dirURLs  bool
		wantDest string
		wantURL  string
	}{
		{"tags.md", false, "tags.html", "tags.html"},
		{"tags.md", true, "tags/index.html", "tags/"},
		{"index.md", true, "index.html", "./"},
		{"guide/README.md", false, "guide/index.html", "guide/index.html"},
		{"guide/intro.md", true, "guide/intro/index.html", "guide/intro/"},
		{"img/logo.png", true, "img/logo.png", "img/logo.png"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			f := File{SrcPath: tc.src, UseDirectoryURLs: tc.dirURLs}
			require.Equal(t, tc.wantDest, f.DestPath())
			require.Equal(t, tc.wantURL, f.URL())
		})
	}
}

func TestFiles_AppendKeepsOrder(t *testing.T) {
	files := NewFiles(File{SrcPath: "a.md"})
	files.Append(File{SrcPath: "notes.txt"})
	files.Append(File{SrcPath: "b.md"})

	require.Equal(t, 3, files.Len())
	md := files.Markdown()
	require.Len(t, md, 2)
	require.Equal(t, "b.md", md[1].SrcPath)
	require.Equal(t, filepath.Join("src", "b.md"), File{SrcPath: "b.md", SrcDir: "src"}.AbsSrcPath())
}
