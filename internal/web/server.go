package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/postpilot/studio/internal/backend"
	"github.com/postpilot/studio/internal/core"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// StaticHandler serves the embedded page scripts under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// Server holds the per-page orchestrators and the template set. Each page is
// independent: handlers read whatever state they need per request and render.
type Server struct {
	studio      *core.StudioService
	carousel    *core.CarouselService
	chat        *core.ChatService
	memory      *core.MemoryService
	competitors *core.CompetitorService
	settings    *core.SettingsService
	templates   *template.Template
}

func NewServer(
	studio *core.StudioService,
	carousel *core.CarouselService,
	chat *core.ChatService,
	memory *core.MemoryService,
	competitors *core.CompetitorService,
	settings *core.SettingsService,
) (*Server, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		studio:      studio,
		carousel:    carousel,
		chat:        chat,
		memory:      memory,
		competitors: competitors,
		settings:    settings,
		templates:   tmpl,
	}, nil
}

func (s *Server) render(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, page, data); err != nil {
		log.Printf("Error rendering %s: %v", page, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func wantsJSON(r *http.Request) bool {
	accept := strings.ToLower(r.Header.Get("Accept"))
	return strings.Contains(accept, "application/json") ||
		r.Header.Get("X-Requested-With") == "fetch"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorStatus maps a failure to a JSON response code: failures from the
// marketing backend are gateway errors, everything else is rejected input.
func errorStatus(err error) int {
	var be *backend.Error
	if errors.As(err, &be) {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}
