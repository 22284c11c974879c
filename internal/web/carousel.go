package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/postpilot/studio/internal/action"
	"github.com/postpilot/studio/internal/backend"
	"github.com/postpilot/studio/internal/core"
)

type CarouselPageData struct {
	SlidesRaw   string
	Caption     string
	Model       string
	AspectRatio string
	Connections []backend.Connection
	Batch       *action.Snapshot
	PostResult  *backend.PostVideoResponse
	CompanyPost *backend.CompanyPostResponse
	Flash       string
	Error       string
}

func (s *Server) CarouselPage(w http.ResponseWriter, r *http.Request) {
	data := CarouselPageData{}
	connections, err := s.carousel.Connections(r.Context())
	if err != nil {
		data.Error = err.Error()
	} else {
		data.Connections = connections
	}
	s.render(w, "carousel", data)
}

// GenerateSlideImages starts the sequential image batch, one generation call
// per slide line. The page polls /api/carousel/batch/{id} while it runs.
func (s *Server) GenerateSlideImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	data := CarouselPageData{
		SlidesRaw:   r.FormValue("slides"),
		Caption:     r.FormValue("caption"),
		Model:       r.FormValue("model"),
		AspectRatio: r.FormValue("aspect_ratio"),
	}
	slides := splitSlides(data.SlidesRaw)

	opts := core.ImageOptions{
		Model:       data.Model,
		Size:        r.FormValue("size"),
		Quality:     r.FormValue("quality"),
		AspectRatio: data.AspectRatio,
	}

	// The batch outlives this request; navigating away abandons interest in
	// its results but does not cancel it.
	batch, err := s.carousel.GenerateAllSlideImages(context.Background(), slides, opts)
	if err != nil {
		if wantsJSON(r) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		data.Error = err.Error()
		s.render(w, "carousel", data)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusAccepted, batch.Snapshot())
		return
	}

	snapshot := batch.Snapshot()
	data.Batch = &snapshot
	if connections, connErr := s.carousel.Connections(r.Context()); connErr == nil {
		data.Connections = connections
	}
	s.render(w, "carousel", data)
}

func (s *Server) BatchStatus(w http.ResponseWriter, r *http.Request) {
	batch, ok := s.carousel.Batch(chi.URLParam(r, "batchID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "batch not found"})
		return
	}
	writeJSON(w, http.StatusOK, batch.Snapshot())
}

func (s *Server) PostCarousel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	data := CarouselPageData{
		Caption:   r.FormValue("caption"),
		SlidesRaw: r.FormValue("slides"),
	}

	result, err := s.carousel.PostCarousel(
		r.Context(),
		r.Form["connection_ids"],
		data.Caption,
		r.FormValue("image_url"),
		r.FormValue("video_url"),
	)
	if err != nil {
		data.Error = err.Error()
	} else {
		data.PostResult = result
		if result.Success {
			data.Flash = "Posted to your connections."
		}
	}

	if wantsJSON(r) {
		if err != nil {
			writeJSON(w, errorStatus(err), map[string]any{"error": data.Error})
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}
	if connections, connErr := s.carousel.Connections(r.Context()); connErr == nil {
		data.Connections = connections
	}
	s.render(w, "carousel", data)
}

func (s *Server) PostToCompanyPage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	data := CarouselPageData{
		Caption:   r.FormValue("caption"),
		SlidesRaw: r.FormValue("slides"),
	}

	result, err := s.carousel.PostToCompanyPage(r.Context(), data.Caption, r.FormValue("image_source"))
	if err != nil {
		data.Error = err.Error()
	} else {
		data.CompanyPost = result
		if result.Success {
			data.Flash = "Posted to the company page."
		} else if result.Error != "" {
			data.Error = result.Error
		}
	}

	if wantsJSON(r) {
		if err != nil {
			writeJSON(w, errorStatus(err), map[string]any{"error": data.Error})
			return
		}
		// A failed company post with err == nil still returns the result; the
		// payload carries its own success flag and error string.
		writeJSON(w, http.StatusOK, result)
		return
	}
	if connections, connErr := s.carousel.Connections(r.Context()); connErr == nil {
		data.Connections = connections
	}
	s.render(w, "carousel", data)
}

// splitSlides turns the one-slide-per-line textarea value into slide texts,
// dropping blank lines.
func splitSlides(raw string) []string {
	var slides []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			slides = append(slides, line)
		}
	}
	return slides
}
