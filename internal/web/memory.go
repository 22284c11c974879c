package web

import (
	"io"
	"log"
	"net/http"

	"github.com/postpilot/studio/internal/core"
	"github.com/postpilot/studio/internal/store"
)

const maxUploadBytes = 16 << 20

type MemoryPageData struct {
	MemoryText string
	Collection string
	Uploaded   *core.UploadedDocument
	Sent       *store.DocumentRecord
	Records    []store.DocumentRecord
	Flash      string
	Error      string
}

func (s *Server) MemoryPage(w http.ResponseWriter, r *http.Request) {
	data := MemoryPageData{}
	records, err := s.memory.SentDocuments()
	if err != nil {
		log.Printf("Error loading sent documents: %v", err)
	} else {
		data.Records = records
	}
	s.render(w, "memory", data)
}

func (s *Server) AddMemory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	data := MemoryPageData{
		MemoryText: r.FormValue("text"),
		Collection: r.FormValue("collection"),
	}

	if err := s.memory.AddMemory(r.Context(), data.MemoryText, data.Collection); err != nil {
		data.Error = err.Error()
	} else {
		data.Flash = "Memory saved."
		data.MemoryText = ""
	}

	data.Records, _ = s.memory.SentDocuments()
	s.render(w, "memory", data)
}

// UploadDocument is step one of the upload-then-forward flow. Forwarding is a
// separate, explicit action.
func (s *Server) UploadDocument(w http.ResponseWriter, r *http.Request) {
	data := MemoryPageData{}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		data.Error = "Please choose a file to upload."
		data.Records, _ = s.memory.SentDocuments()
		s.render(w, "memory", data)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		data.Error = "Please choose a file to upload."
		data.Records, _ = s.memory.SentDocuments()
		s.render(w, "memory", data)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		data.Error = "Could not read the uploaded file."
		data.Records, _ = s.memory.SentDocuments()
		s.render(w, "memory", data)
		return
	}

	uploaded, err := s.memory.UploadDocument(r.Context(), header.Filename, content)
	if err != nil {
		data.Error = err.Error()
	} else {
		data.Uploaded = uploaded
		data.Flash = "Document uploaded. You can now send it to the memory store."
	}

	data.Records, _ = s.memory.SentDocuments()
	s.render(w, "memory", data)
}

func (s *Server) ForwardToMemoryStore(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	data := MemoryPageData{}
	documentID := r.FormValue("document_id")

	record, err := s.memory.ForwardToMemoryStore(r.Context(), documentID)
	if err != nil {
		data.Error = err.Error()
		if name, pending := s.memory.PendingDocument(documentID); pending {
			data.Uploaded = &core.UploadedDocument{DocumentID: documentID, Name: name}
		}
	} else {
		data.Sent = record
		data.Flash = "Document sent to the memory store."
	}

	data.Records, _ = s.memory.SentDocuments()
	s.render(w, "memory", data)
}

func (s *Server) RemoveSentDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	data := MemoryPageData{}
	if err := s.memory.RemoveSentDocument(r.FormValue("id")); err != nil {
		data.Error = err.Error()
	} else {
		data.Flash = "Record removed."
	}

	data.Records, _ = s.memory.SentDocuments()
	s.render(w, "memory", data)
}
