package docs

import (
	"path"
	"path/filepath"
	"strings"
)

// MarkdownExt is the extension of documents scanned for front matter.
const MarkdownExt = ".md"

// File is one entry of a build's file collection.
type File struct {
	SrcPath          string // Path relative to SrcDir, slash separated
	SrcDir           string // Directory the file is read from
	DestDir          string // Site directory the file is built into
	UseDirectoryURLs bool   // Build foo.md as foo/index.html rather than foo.html
}

// AbsSrcPath returns the absolute (or SrcDir-relative) path of the source file.
func (f File) AbsSrcPath() string {
	return filepath.Join(f.SrcDir, filepath.FromSlash(f.SrcPath))
}

// IsMarkdown reports whether the file is a markdown document.
func (f File) IsMarkdown() bool {
	return strings.HasSuffix(f.SrcPath, MarkdownExt)
}

// DestPath returns the output path relative to DestDir, slash separated.
func (f File) DestPath() string {
	if !f.IsMarkdown() {
		return f.SrcPath
	}
	stem := strings.TrimSuffix(f.SrcPath, MarkdownExt)
	dir, name := path.Split(stem)
	if !f.UseDirectoryURLs || name == "index" || strings.EqualFold(name, "README") {
		if strings.EqualFold(name, "README") {
			name = "index"
		}
		return dir + name + ".html"
	}
	return dir + name + "/index.html"
}

// URL returns the site URL of the built page, relative to the site root.
func (f File) URL() string {
	dest := f.DestPath()
	if f.UseDirectoryURLs && f.IsMarkdown() {
		dest = strings.TrimSuffix(dest, "index.html")
		if dest == "" {
			return "./"
		}
	}
	return dest
}

// Files is the ordered file collection of one build.
type Files struct {
	files []File
}

// NewFiles returns a collection holding files in order.
func NewFiles(files ...File) *Files {
	return &Files{files: append([]File(nil), files...)}
}

// Append adds f at the end of the collection.
func (fs *Files) Append(f File) {
	fs.files = append(fs.files, f)
}

// All returns the files in collection order.
func (fs *Files) All() []File {
	return append([]File(nil), fs.files...)
}

// Len returns the number of files.
func (fs *Files) Len() int { return len(fs.files) }

// Markdown returns the markdown documents in collection order.
func (fs *Files) Markdown() []File {
	var out []File
	for _, f := range fs.files {
		if f.IsMarkdown() {
			out = append(out, f)
		}
	}
	return out
}
