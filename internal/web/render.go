package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"fyyur/internal/listing"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"datetime": listing.FormatDateTime,
	"join":     strings.Join,
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page under templates/ against layout.html. Pages
// are keyed by their path without extension, such as "pages/venues".
func NewRenderer() (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, dir := range []string{"pages", "forms", "errors"} {
		files, err := fs.Glob(templateFS, "templates/"+dir+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			tmpl, err := base.Clone()
			if err != nil {
				return nil, err
			}
			tmpl, err = tmpl.ParseFS(templateFS, file)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", file, err)
			}
			name := dir + "/" + strings.TrimSuffix(path.Base(file), ".html")
			r.pages[name] = tmpl
		}
	}
	return r, nil
}

// Render writes the named page with status. Nothing is written if the
// template fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
