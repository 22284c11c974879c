package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/postpilot/studio/internal/backend"
	"github.com/postpilot/studio/internal/store"
)

const defaultMemoryCollection = "memories"

type pendingUpload struct {
	Name string
	Data []byte
}

// UploadedDocument is step one of the upload-then-forward flow: the backend
// has registered the document, and forwarding to the memory store is now
// possible but must be triggered explicitly.
type UploadedDocument struct {
	DocumentID string
	Name       string
}

// MemoryService orchestrates the memory pages: freeform memories, document
// uploads, and forwarding uploads to the external memory store.
type MemoryService struct {
	backend *backend.Client
	local   store.LocalStore

	mu      sync.Mutex
	pending map[string]pendingUpload
}

func NewMemoryService(b *backend.Client, local store.LocalStore) *MemoryService {
	return &MemoryService{
		backend: b,
		local:   local,
		pending: make(map[string]pendingUpload),
	}
}

func (s *MemoryService) AddMemory(ctx context.Context, text, collection string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("Please enter some text to remember.")
	}
	if collection == "" {
		collection = defaultMemoryCollection
	}
	return s.backend.AddMemory(ctx, text, collection)
}

// UploadDocument registers a document with the backend. The file content is
// held so a later ForwardToMemoryStore call can send the same bytes.
func (s *MemoryService) UploadDocument(ctx context.Context, filename string, data []byte) (*UploadedDocument, error) {
	if filename == "" || len(data) == 0 {
		return nil, errors.New("Please choose a file to upload.")
	}

	documentID, err := s.backend.UploadDocument(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	if documentID == "" {
		return nil, errors.New(backend.DefaultErrorMessage)
	}

	s.mu.Lock()
	s.pending[documentID] = pendingUpload{Name: filename, Data: data}
	s.mu.Unlock()

	return &UploadedDocument{DocumentID: documentID, Name: filename}, nil
}

// ForwardToMemoryStore sends a previously uploaded document on to the memory
// store and records it locally. The two steps are never auto-chained.
func (s *MemoryService) ForwardToMemoryStore(ctx context.Context, documentID string) (*store.DocumentRecord, error) {
	s.mu.Lock()
	upload, ok := s.pending[documentID]
	s.mu.Unlock()
	if !ok {
		return nil, errors.New("Upload a document first, then send it to the memory store.")
	}

	resourceID, err := s.backend.UploadToMemoryStore(ctx, upload.Name, upload.Data)
	if err != nil {
		return nil, err
	}
	if resourceID == "" {
		return nil, errors.New(backend.DefaultErrorMessage)
	}

	record := store.DocumentRecord{
		ID:         uuid.NewString(),
		Name:       upload.Name,
		ResourceID: resourceID,
		SentAt:     time.Now().UTC(),
	}

	records, err := s.SentDocuments()
	if err != nil {
		return nil, err
	}
	records = append(records, record)
	if err := s.local.Put(store.KeySentDocuments, records); err != nil {
		return nil, fmt.Errorf("failed to record sent document: %w", err)
	}

	s.mu.Lock()
	delete(s.pending, documentID)
	s.mu.Unlock()

	return &record, nil
}

func (s *MemoryService) SentDocuments() ([]store.DocumentRecord, error) {
	var records []store.DocumentRecord
	if _, err := s.local.Get(store.KeySentDocuments, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// RemoveSentDocument drops a record from the local list only; there is no
// backend deletion to confirm.
func (s *MemoryService) RemoveSentDocument(id string) error {
	records, err := s.SentDocuments()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return s.local.Put(store.KeySentDocuments, kept)
}

// PendingDocument reports whether an upload is still waiting to be forwarded.
func (s *MemoryService) PendingDocument(documentID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	upload, ok := s.pending[documentID]
	return upload.Name, ok
}
