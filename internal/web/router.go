package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Handle("/static/*", StaticHandler())

	r.Get("/", s.StudioPage)
	r.Post("/studio/post", s.CreatePost)
	r.Post("/studio/suggestions", s.LoadSuggestions)

	r.Get("/carousel", s.CarouselPage)
	r.Post("/carousel/generate", s.GenerateSlideImages)
	r.Post("/carousel/post", s.PostCarousel)
	r.Post("/carousel/company-post", s.PostToCompanyPage)

	r.Get("/chat", s.ChatPage)
	r.Post("/chat/send", s.SendChatMessage)

	r.Get("/memory", s.MemoryPage)
	r.Post("/memory/add", s.AddMemory)
	r.Post("/memory/upload", s.UploadDocument)
	r.Post("/memory/forward", s.ForwardToMemoryStore)
	r.Post("/memory/remove", s.RemoveSentDocument)

	r.Get("/competitors", s.CompetitorsPage)
	r.Post("/competitors/add", s.AddCompetitor)
	r.Post("/competitors/remove", s.RemoveCompetitor)
	r.Post("/competitors/discover", s.DiscoverCompetitors)

	r.Get("/settings", s.SettingsPage)
	r.Post("/settings/email-notifications", s.ToggleEmailNotifications)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
		r.Get("/carousel/batch/{batchID}", s.BatchStatus)
	})

	return r
}
