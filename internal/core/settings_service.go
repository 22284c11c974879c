package core

import (
	"context"

	"github.com/postpilot/studio/internal/backend"
	"github.com/postpilot/studio/internal/store"
)

// SettingsService backs the settings page: connection listing and the
// email-notification preference.
type SettingsService struct {
	backend *backend.Client
	local   store.LocalStore
}

func NewSettingsService(b *backend.Client, local store.LocalStore) *SettingsService {
	return &SettingsService{backend: b, local: local}
}

func (s *SettingsService) Connections(ctx context.Context) ([]backend.Connection, error) {
	return s.backend.ListConnections(ctx)
}

// EmailNotifications returns the locally cached preference, on by default.
func (s *SettingsService) EmailNotifications() (bool, error) {
	enabled := true
	if _, err := s.local.Get(store.KeyEmailNotifications, &enabled); err != nil {
		return true, err
	}
	return enabled, nil
}

// SetEmailNotifications issues the backend toggle and only then updates the
// local preference, so a failed call leaves the previous value in place.
func (s *SettingsService) SetEmailNotifications(ctx context.Context, enabled bool) error {
	if err := s.backend.SetEmailNotifications(ctx, enabled); err != nil {
		return err
	}
	return s.local.Put(store.KeyEmailNotifications, enabled)
}
