package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/postpilot/studio/internal/backend"
)

// memStore is an in-memory LocalStore for tests.
type memStore struct {
	values map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string][]byte)}
}

func (m *memStore) Get(key string, out any) (bool, error) {
	encoded, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(encoded, out)
}

func (m *memStore) Put(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = encoded
	return nil
}

func (m *memStore) Delete(key string) error {
	delete(m.values, key)
	return nil
}

func newTestBackend(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return backend.NewClient(ts.URL, "", 5*time.Second)
}
