package web

import (
	"log"
	"net/http"

	"github.com/postpilot/studio/internal/backend"
)

type SettingsPageData struct {
	Connections        []backend.Connection
	EmailNotifications bool
	Flash              string
	Error              string
}

func (s *Server) SettingsPage(w http.ResponseWriter, r *http.Request) {
	data := SettingsPageData{}

	enabled, err := s.settings.EmailNotifications()
	if err != nil {
		log.Printf("Error loading email notification preference: %v", err)
	}
	data.EmailNotifications = enabled

	connections, err := s.settings.Connections(r.Context())
	if err != nil {
		data.Error = err.Error()
	} else {
		data.Connections = connections
	}

	s.render(w, "settings", data)
}

// ToggleEmailNotifications flips the preference. On failure the previous
// value stays in effect and the error is surfaced.
func (s *Server) ToggleEmailNotifications(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	enabled := r.FormValue("enabled") == "true"
	data := SettingsPageData{}

	if err := s.settings.SetEmailNotifications(r.Context(), enabled); err != nil {
		data.Error = err.Error()
	} else {
		data.Flash = "Notification preference saved."
	}
	data.EmailNotifications, _ = s.settings.EmailNotifications()

	if connections, err := s.settings.Connections(r.Context()); err == nil {
		data.Connections = connections
	}

	if wantsJSON(r) {
		if data.Error != "" {
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"error":   data.Error,
				"enabled": data.EmailNotifications,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"enabled": data.EmailNotifications})
		return
	}
	s.render(w, "settings", data)
}
