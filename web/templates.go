// Package web はジャーナルのWebサーバー実装を提供します。
package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

// parseTemplates は各ページのテンプレートをレイアウトと組み合わせて構築します。
func parseTemplates() map[string]*template.Template {
	pages := []string{"home", "detail", "editor", "login"}
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		templates[page] = template.Must(template.ParseFS(templatesFS,
			"templates/layout.html",
			"templates/"+page+".html",
		))
	}
	return templates
}

// renderPage は指定されたページをレイアウト込みで描画します。
func (s *Server) renderPage(w http.ResponseWriter, status int, page string, data any) {
	t, ok := s.templates[page]
	if !ok {
		log.Printf("Unknown page template: %s", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Printf("Error rendering %s template: %v", page, err)
	}
}
