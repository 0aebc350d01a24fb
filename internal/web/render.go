package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/middleware"
)

//go:embed templates
var templateFS embed.FS

// View is what every page template receives.  Page-specific values live in
// Data; Flashes holds the messages queued for this response.
type View struct {
	Title   string
	Flashes []middleware.Message
	Data    any
}

// Titled lets handler data name the page.
type Titled interface {
	PageTitle() string
}

// Renderer implements echo.Renderer over the embedded templates.  Each page
// is parsed together with the layout so every page can define its own
// "title" and "content" blocks.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses all templates once.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	err = fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" || strings.HasPrefix(p, "templates/layouts/") {
			return nil
		}
		t, err := base.Clone()
		if err != nil {
			return err
		}
		if _, err := t.ParseFS(templateFS, p); err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		r.pages[strings.TrimPrefix(p, "templates/")] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render executes the layout for the named page, e.g. "pages/home.html".
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	v := View{Data: data}
	if tt, ok := data.(Titled); ok {
		v.Title = tt.PageTitle()
	}
	if c != nil {
		v.Flashes = middleware.Flashes(c)
	}
	return t.ExecuteTemplate(w, "layout", v)
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}
