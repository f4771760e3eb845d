// Package web holds the embedded page templates and the gin HTML renderer built from them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names accepted by Renderer.Instance.
const (
	PageHome     = "home"
	PageProjects = "projects"
	PageProject  = "project"
	PageResume   = "resume"
	PageContact  = "contact"
)

// Pages lists every page template.
var Pages = []string{PageHome, PageProjects, PageProject, PageResume, PageContact}

var funcs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"isActive": func(active, url string) bool {
		return active == url
	},
}

// Renderer keeps one parsed template set per page; each set is base.html plus the page.
type Renderer struct {
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(Pages))}
	for _, page := range Pages {
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.templates[page] = tmpl
	}
	return r, nil
}

// Instance implements render.HTMLRender.
func (r *Renderer) Instance(name string, data any) render.Render {
	return render.HTML{
		Template: r.templates[name],
		Name:     "base",
		Data:     data,
	}
}

// Execute renders page to w. It is used to dry-run every page at startup.
func (r *Renderer) Execute(w io.Writer, page string, data any) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
