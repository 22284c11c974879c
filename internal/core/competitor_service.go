package core

import (
	"context"
	"errors"
	"strings"

	"github.com/postpilot/studio/internal/backend"
	"github.com/postpilot/studio/internal/store"
)

const competitorCollection = "competitors"

// CompetitorService keeps the tracked-competitor list. The list lives in the
// local store and is mirrored to the external memory store as one text blob
// on every mutation, so the AI backend can see it.
type CompetitorService struct {
	backend *backend.Client
	local   store.LocalStore
}

func NewCompetitorService(b *backend.Client, local store.LocalStore) *CompetitorService {
	return &CompetitorService{backend: b, local: local}
}

func (s *CompetitorService) List() ([]string, error) {
	var names []string
	if _, err := s.local.Get(store.KeyCompetitors, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Add inserts a competitor name. Adding a name already present is a no-op:
// no local write and no memory-store call.
func (s *CompetitorService) Add(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("Please enter a competitor name.")
	}

	names, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, existing := range names {
		if strings.EqualFold(existing, name) {
			return names, nil
		}
	}

	names = append(names, name)
	if err := s.local.Put(store.KeyCompetitors, names); err != nil {
		return nil, err
	}
	if err := s.mirror(ctx, names); err != nil {
		// The local list is already saved; surface the mirror failure.
		return names, err
	}
	return names, nil
}

func (s *CompetitorService) Remove(ctx context.Context, name string) ([]string, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(names))
	for _, existing := range names {
		if !strings.EqualFold(existing, name) {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(names) {
		return names, nil
	}

	if err := s.local.Put(store.KeyCompetitors, kept); err != nil {
		return nil, err
	}
	if err := s.mirror(ctx, kept); err != nil {
		return kept, err
	}
	return kept, nil
}

// Discover asks the backend to find competitors from an uploaded brand
// document. Entries are already normalized to name+reason at the gateway.
func (s *CompetitorService) Discover(ctx context.Context, documentID string) ([]backend.Competitor, error) {
	if documentID == "" {
		return nil, errors.New("Upload a brand document before discovering competitors.")
	}
	return s.backend.FindCompetitors(ctx, documentID)
}

func (s *CompetitorService) mirror(ctx context.Context, names []string) error {
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = "- " + name
	}
	return s.backend.AddMemory(ctx, strings.Join(lines, "\n"), competitorCollection)
}
