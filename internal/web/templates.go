package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/voltrack/voltrack/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates holds all page templates, keyed by page name.
type Templates struct {
	pages map[string]*template.Template
}

// LoadTemplates parses the embedded pages. Each page gets its own clone
// of the shared layout so {{define "content"}} blocks don't collide.
func LoadTemplates() *Templates {
	funcMap := template.FuncMap{
		"hours": func(f float64) string { return fmt.Sprintf("%.2f", f) },
	}

	layout := template.Must(
		template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html"),
	)

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		panic(fmt.Sprintf("read embedded templates: %v", err))
	}

	pages := make(map[string]*template.Template)
	for _, e := range entries {
		name := e.Name()
		if name == "layout.html" {
			continue
		}
		clone := template.Must(layout.Clone())
		template.Must(clone.ParseFS(templateFS, "templates/"+name))
		pages[strings.TrimSuffix(name, ".html")] = clone
	}
	return &Templates{pages: pages}
}

// pageData is the payload every template receives.
type pageData struct {
	User    *domain.User
	Flashes []Flash
	Roles   []domain.Role
	Data    any
}

// Execute renders a page by name into w.
func (t *Templates) Execute(w io.Writer, name string, data pageData) error {
	page, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return page.ExecuteTemplate(w, "layout.html", data)
}

// render writes a page with the standard chrome (current user, pending
// flashes). Render errors become a 500 and a log line.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, user *domain.User, data any) {
	pd := pageData{
		User:    user,
		Flashes: takeFlash(w, r),
		Roles:   domain.Roles,
		Data:    data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.Execute(w, name, pd); err != nil {
		log.Printf("web: render %s: %v", name, err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
	}
}
