package web

import (
	"net/http"

	"github.com/postpilot/studio/internal/backend"
)

const chatSessionCookie = "chat_session"

type ChatPageData struct {
	Transcript []backend.ChatTurn
	Flash      string
	Error      string
}

// ChatPage renders the transcript for the visitor's session, starting a new
// one seeded with the greeting when none exists.
func (s *Server) ChatPage(w http.ResponseWriter, r *http.Request) {
	var transcript []backend.ChatTurn

	if cookie, err := r.Cookie(chatSessionCookie); err == nil {
		if existing, ok := s.chat.Transcript(cookie.Value); ok {
			transcript = existing
		}
	}
	if transcript == nil {
		id, fresh := s.chat.StartSession()
		transcript = fresh
		http.SetCookie(w, &http.Cookie{
			Name:     chatSessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
		})
	}

	s.render(w, "chat", ChatPageData{Transcript: transcript})
}

func (s *Server) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	sessionID := ""
	if cookie, err := r.Cookie(chatSessionCookie); err == nil {
		sessionID = cookie.Value
	}

	transcript, err := s.chat.Send(r.Context(), sessionID, r.FormValue("message"))
	if err != nil {
		// Keep whatever transcript we have so the page stays usable.
		existing, _ := s.chat.Transcript(sessionID)
		if wantsJSON(r) {
			writeJSON(w, errorStatus(err), map[string]any{"error": err.Error()})
			return
		}
		s.render(w, "chat", ChatPageData{Transcript: existing, Error: err.Error()})
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]any{"transcript": transcript})
		return
	}
	s.render(w, "chat", ChatPageData{Transcript: transcript})
}
