package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/dmitrijs2005/chronofeed/internal/server/directory"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type indexData struct {
	Title   string
	User    *directory.User
	Records []map[string]string
}

type loginData struct {
	Title string
	Flash string
}

func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// render executes a template into a buffer first, so a template error
// never produces a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error(r.Context(), "rendering template", "template", name, "error", err,
			"request_id", RequestID(r.Context()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The static tree is compiled in; a missing subtree is a build
		// defect, not a runtime condition.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
