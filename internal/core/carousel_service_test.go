package core

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postpilot/studio/internal/action"
	"github.com/postpilot/studio/internal/backend"
)

func newCarouselService(t *testing.T, handler http.HandlerFunc) *CarouselService {
	t.Helper()
	return NewCarouselService(newTestBackend(t, handler), action.NewRunner(time.Millisecond, time.Minute))
}

func TestGenerateSlideImageEmptyPromptSkipsNetworkCall(t *testing.T) {
	calls := 0
	svc := newCarouselService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := svc.GenerateSlideImage(context.Background(), "  ", ImageOptions{})
	require.Error(t, err)
	assert.Equal(t, 0, calls)
}

func TestGenerateSlideImageResolvesBase64(t *testing.T) {
	svc := newCarouselService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"image_base64":"abc123"}`))
	})

	src, err := svc.GenerateSlideImage(context.Background(), "a sunset", ImageOptions{})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,abc123", src)
}

func TestGenerateSlideImageNoUsableReference(t *testing.T) {
	svc := newCarouselService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	src, err := svc.GenerateSlideImage(context.Background(), "a sunset", ImageOptions{})
	require.NoError(t, err)
	assert.Empty(t, src)
}

func TestGenerateAllSlideImagesSequentialOrder(t *testing.T) {
	var mu sync.Mutex
	var prompts []string
	svc := newCarouselService(t, func(w http.ResponseWriter, r *http.Request) {
		var req backend.GenerateImageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		mu.Lock()
		prompts = append(prompts, req.Prompt)
		mu.Unlock()
		w.Write([]byte(`{"image_url":"https://img.example.com/` + req.Prompt + `.png"}`))
	})

	batch, err := svc.GenerateAllSlideImages(context.Background(), []string{"one", "two", "three"}, ImageOptions{})
	require.NoError(t, err)
	<-batch.Done()

	mu.Lock()
	assert.Equal(t, []string{"one", "two", "three"}, prompts)
	mu.Unlock()

	snapshot := batch.Snapshot()
	assert.Equal(t, "succeeded", snapshot.Status)
	assert.Equal(t, map[int]string{
		0: "https://img.example.com/one.png",
		1: "https://img.example.com/two.png",
		2: "https://img.example.com/three.png",
	}, snapshot.Results)
}

func TestGenerateAllSlideImagesFailureKeepsPartialResults(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	svc := newCarouselService(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"generation quota exceeded"}`))
			return
		}
		w.Write([]byte(`{"image_url":"https://img.example.com/a.png"}`))
	})

	batch, err := svc.GenerateAllSlideImages(context.Background(), []string{"one", "two", "three"}, ImageOptions{})
	require.NoError(t, err)
	<-batch.Done()

	snapshot := batch.Snapshot()
	assert.Equal(t, "failed", snapshot.Status)
	assert.Equal(t, "generation quota exceeded", snapshot.Error)
	assert.Equal(t, map[int]string{0: "https://img.example.com/a.png"}, snapshot.Results)

	mu.Lock()
	assert.Equal(t, 2, calls) // the third slide was never attempted
	mu.Unlock()
}

func TestGenerateAllSlideImagesValidatesSlides(t *testing.T) {
	calls := 0
	svc := newCarouselService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := svc.GenerateAllSlideImages(context.Background(), nil, ImageOptions{})
	require.Error(t, err)

	_, err = svc.GenerateAllSlideImages(context.Background(), []string{"one", " "}, ImageOptions{})
	require.Error(t, err)
	assert.Equal(t, 0, calls)
}

func TestPostCarouselValidation(t *testing.T) {
	calls := 0
	svc := newCarouselService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := svc.PostCarousel(context.Background(), nil, "caption", "", "")
	require.Error(t, err)

	_, err = svc.PostCarousel(context.Background(), []string{"c1"}, "  ", "", "")
	require.Error(t, err)
	assert.Equal(t, 0, calls)
}

func TestPostToCompanyPageSplitsImageSource(t *testing.T) {
	var gotReq backend.CompanyPostRequest
	svc := newCarouselService(t, func(w http.ResponseWriter, r *http.Request) {
		var req backend.CompanyPostRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotReq = req
		w.Write([]byte(`{"success":true,"post_url":"https://li.example.com/p/1"}`))
	})

	resp, err := svc.PostToCompanyPage(context.Background(), "hello", "data:image/png;base64,abc")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "data:image/png;base64,abc", gotReq.ImageBase64)
	assert.Empty(t, gotReq.ImageURL)

	_, err = svc.PostToCompanyPage(context.Background(), "hello", "https://img.example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/a.png", gotReq.ImageURL)
	assert.Empty(t, gotReq.ImageBase64)
}
