package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"
)

// DefaultTemplate is the name of the bundled tag page template.
const DefaultTemplate = "tags.md.tmpl"

//go:embed builtin/*.tmpl
var builtinFS embed.FS

// Engine renders a named template against a data context.
//
// Implementations fail when the template cannot be found, does not parse, or
// references a context field that does not exist.
type Engine interface {
	Render(name string, data any) (string, error)
}

// NewEngine selects the engine and template name for a tag page. A custom
// template path wins over the bundled default.
func NewEngine(customPath string) (Engine, string) {
	if customPath != "" {
		return &FileEngine{Dir: filepath.Dir(customPath)}, filepath.Base(customPath)
	}
	return &BuiltinEngine{}, DefaultTemplate
}

// BuiltinEngine renders templates bundled with the binary.
type BuiltinEngine struct{}

// Render implements Engine.
func (e *BuiltinEngine) Render(name string, data any) (string, error) {
	body, err := fs.ReadFile(builtinFS, "builtin/"+name)
	if err != nil {
		return "", fmt.Errorf("builtin template %q not found: %w", name, err)
	}
	return execute(name, string(body), data)
}

// FileEngine renders templates loaded from a directory on disk.
type FileEngine struct {
	Dir string
}

// Render implements Engine.
func (e *FileEngine) Render(name string, data any) (string, error) {
	path := filepath.Join(e.Dir, name)
	// #nosec G304 -- path is the operator-configured template.
	body, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load template %s: %w", path, err)
	}
	return execute(name, string(body), data)
}

func execute(name, body string, data any) (string, error) {
	tpl, err := template.New(name).Funcs(funcMap()).Option("missingkey=error").Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}
