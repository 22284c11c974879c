package core

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostEmptyTopicSkipsNetworkCall(t *testing.T) {
	calls := 0
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	svc := NewStudioService(client)

	_, err := svc.CreatePost(context.Background(), "   ", "", "", "", true)
	require.Error(t, err)
	assert.Equal(t, 0, calls)
}

func TestCreatePostRoundTrip(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/marketing-post/create", r.URL.Path)
		w.Write([]byte(`{"image_url":"/static-posts/a.png","full_caption":"C","hashtags":["x","y"]}`))
	})
	svc := NewStudioService(client)

	post, err := svc.CreatePost(context.Background(), "X", "bold", "1:1", "instagram", true)
	require.NoError(t, err)
	// Static-relative references are used verbatim, no base prefix.
	assert.Equal(t, "/static-posts/a.png", post.ImageSource)
	assert.Equal(t, "C", post.Caption)
	assert.Equal(t, []string{"x", "y"}, post.Hashtags)
}

func TestCreatePostSurfacesBackendError(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"model overloaded"}`))
	})
	svc := NewStudioService(client)

	_, err := svc.CreatePost(context.Background(), "X", "", "", "", false)
	require.Error(t, err)
	assert.Equal(t, "model overloaded", err.Error())
}

func TestTopicSuggestionsDefaultsCount(t *testing.T) {
	var gotCount string
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotCount = r.URL.Query().Get("count")
		w.Write([]byte(`{"suggestions":[{"topic":"spring sale","score":0.9,"source":"trends"}]}`))
	})
	svc := NewStudioService(client)

	suggestions, err := svc.TopicSuggestions(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "5", gotCount)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "spring sale", suggestions[0].Topic)
}
