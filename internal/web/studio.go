package web

import (
	"net/http"
	"strconv"

	"github.com/postpilot/studio/internal/backend"
	"github.com/postpilot/studio/internal/core"
)

type StudioPageData struct {
	Topic           string
	CaptionStyle    string
	AspectRatio     string
	Platform        string
	IncludeHashtags bool
	Post            *core.MarketingPost
	Suggestions     []backend.Suggestion
	Flash           string
	Error           string
}

func (s *Server) StudioPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "studio", StudioPageData{IncludeHashtags: true})
}

func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	data := StudioPageData{
		Topic:           r.FormValue("topic"),
		CaptionStyle:    r.FormValue("caption_style"),
		AspectRatio:     r.FormValue("aspect_ratio"),
		Platform:        r.FormValue("platform"),
		IncludeHashtags: r.FormValue("include_hashtags") != "",
	}

	post, err := s.studio.CreatePost(r.Context(), data.Topic, data.CaptionStyle, data.AspectRatio, data.Platform, data.IncludeHashtags)
	if err != nil {
		data.Error = err.Error()
	} else {
		data.Post = post
	}

	if wantsJSON(r) {
		if err != nil {
			writeJSON(w, errorStatus(err), map[string]any{"error": data.Error})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"image_source": post.ImageSource,
			"caption":      post.Caption,
			"hashtags":     post.Hashtags,
		})
		return
	}
	s.render(w, "studio", data)
}

func (s *Server) LoadSuggestions(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	count, _ := strconv.Atoi(r.FormValue("count"))
	data := StudioPageData{
		Topic:           r.FormValue("topic"),
		IncludeHashtags: true,
	}

	suggestions, err := s.studio.TopicSuggestions(r.Context(), count)
	if err != nil {
		data.Error = err.Error()
	} else {
		data.Suggestions = suggestions
	}

	if wantsJSON(r) {
		if err != nil {
			writeJSON(w, errorStatus(err), map[string]any{"error": data.Error})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
		return
	}
	s.render(w, "studio", data)
}
