package web

import (
	"io"
	"log"
	"net/http"

	"github.com/postpilot/studio/internal/backend"
)

type CompetitorsPageData struct {
	Names      []string
	NewName    string
	Discovered []backend.Competitor
	DocumentID string
	Flash      string
	Error      string
}

func (s *Server) CompetitorsPage(w http.ResponseWriter, r *http.Request) {
	data := CompetitorsPageData{}
	names, err := s.competitors.List()
	if err != nil {
		log.Printf("Error loading competitor list: %v", err)
	} else {
		data.Names = names
	}
	s.render(w, "competitors", data)
}

func (s *Server) AddCompetitor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	data := CompetitorsPageData{NewName: r.FormValue("name")}
	names, err := s.competitors.Add(r.Context(), data.NewName)
	data.Names = names
	if err != nil {
		data.Error = err.Error()
	} else {
		data.NewName = ""
	}
	s.render(w, "competitors", data)
}

func (s *Server) RemoveCompetitor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	data := CompetitorsPageData{}
	names, err := s.competitors.Remove(r.Context(), r.FormValue("name"))
	data.Names = names
	if err != nil {
		data.Error = err.Error()
	}
	s.render(w, "competitors", data)
}

// DiscoverCompetitors accepts either a document id from an earlier upload or
// a fresh brand document, which is registered first and then analyzed.
func (s *Server) DiscoverCompetitors(w http.ResponseWriter, r *http.Request) {
	data := CompetitorsPageData{}

	documentID := ""
	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		documentID = r.FormValue("document_id")
		if file, header, ferr := r.FormFile("file"); ferr == nil {
			defer file.Close()
			content, rerr := io.ReadAll(file)
			if rerr != nil {
				data.Error = "Could not read the uploaded file."
				data.Names, _ = s.competitors.List()
				s.render(w, "competitors", data)
				return
			}
			uploaded, uerr := s.memory.UploadDocument(r.Context(), header.Filename, content)
			if uerr != nil {
				data.Error = uerr.Error()
				data.Names, _ = s.competitors.List()
				s.render(w, "competitors", data)
				return
			}
			documentID = uploaded.DocumentID
		}
	} else if perr := r.ParseForm(); perr == nil {
		documentID = r.FormValue("document_id")
	}

	data.DocumentID = documentID
	discovered, err := s.competitors.Discover(r.Context(), documentID)
	if err != nil {
		data.Error = err.Error()
	} else {
		data.Discovered = discovered
	}

	data.Names, _ = s.competitors.List()
	s.render(w, "competitors", data)
}
