// Package templates handles HTML rendering for the page and for the
// fragment patches sent over SSE.
package templates

import (
	"bytes"
	"html/template"
	"io"
	"path/filepath"
	"sync"
)

// Renderer manages the page template and its fragments.
type Renderer struct {
	templates *template.Template
	mu        sync.RWMutex
}

// New creates a renderer from web/templates: the page itself plus every
// fragment under templates/fragments/.
func New(templatesDir string) (*Renderer, error) {
	tmpl, err := template.New("").ParseGlob(filepath.Join(templatesDir, "*.html"))
	if err != nil {
		return nil, err
	}
	tmpl, err = tmpl.ParseGlob(filepath.Join(templatesDir, "fragments", "*.html"))
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: tmpl}, nil
}

// Render renders a named template to a string, for SSE element patches.
func (r *Renderer) Render(name string, data any) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Execute renders a named template directly to a writer, for full pages.
func (r *Renderer) Execute(w io.Writer, name string, data any) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.templates.ExecuteTemplate(w, name, data)
}
