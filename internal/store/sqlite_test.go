package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)

	var names []string
	found, err := s.Get(KeyCompetitors, &names)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, names)
}

func TestPutThenGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	sentAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	records := []DocumentRecord{
		{ID: "r1", Name: "brand.md", ResourceID: "res-1", SentAt: sentAt},
	}
	require.NoError(t, s.Put(KeySentDocuments, records))

	var loaded []DocumentRecord
	found, err := s.Get(KeySentDocuments, &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, records, loaded)
}

func TestPutOverwritesExistingValue(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put(KeyCompetitors, []string{"Acme"}))
	require.NoError(t, s.Put(KeyCompetitors, []string{"Acme", "Globex"}))

	var names []string
	found, err := s.Get(KeyCompetitors, &names)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Acme", "Globex"}, names)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put(KeyEmailNotifications, false))
	require.NoError(t, s.Delete(KeyEmailNotifications))

	var enabled bool
	found, err := s.Get(KeyEmailNotifications, &enabled)
	require.NoError(t, err)
	assert.False(t, found)
}
