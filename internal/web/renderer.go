package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html static/*
var assets embed.FS

// pageNames lists every renderable page. Each page file defines a "content"
// template that the shared layout wraps.
var pageNames = []string{
	"home",
	"login",
	"register",
	"dashboard",
	"resources",
	"resource_form",
	"bookings",
	"denied",
	"notfound",
	"error",
}

// Renderer implements echo.Renderer over the embedded templates, one
// template set per page so pages cannot leak defines into each other.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		// label renders an enum-ish value with a leading capital, e.g.
		// "pending" -> "Pending".
		"label": func(v any) string {
			s := fmt.Sprint(v)
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(assets,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("renderer: parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("renderer: unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}

// staticFS exposes the embedded static assets rooted at static/.
func staticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
