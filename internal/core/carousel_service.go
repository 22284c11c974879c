package core

import (
	"context"
	"errors"
	"strings"

	"github.com/postpilot/studio/internal/action"
	"github.com/postpilot/studio/internal/backend"
)

// ImageOptions are the generation knobs forwarded to the backend for every
// slide in a batch.
type ImageOptions struct {
	Model       string
	Size        string
	Quality     string
	AspectRatio string
}

type CarouselService struct {
	backend *backend.Client
	runner  *action.Runner
}

func NewCarouselService(b *backend.Client, runner *action.Runner) *CarouselService {
	return &CarouselService{backend: b, runner: runner}
}

// GenerateSlideImage generates the image for a single slide and returns a
// resolved image source, empty when the backend returned nothing usable.
func (s *CarouselService) GenerateSlideImage(ctx context.Context, prompt string, opts ImageOptions) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("Please enter slide text before generating an image.")
	}

	resp, err := s.backend.GenerateImage(ctx, backend.GenerateImageRequest{
		Prompt:      prompt,
		Model:       opts.Model,
		Size:        opts.Size,
		Quality:     opts.Quality,
		AspectRatio: opts.AspectRatio,
		N:           1,
	})
	if err != nil {
		return "", err
	}
	return backend.ImageSource(s.backend.BaseURL(), resp.ImageURL, resp.ImageBase64), nil
}

// GenerateAllSlideImages starts a sequential batch over the slide texts,
// one backend call per slide in list order with the runner's fixed delay
// between calls. The returned batch is pollable while it runs.
func (s *CarouselService) GenerateAllSlideImages(ctx context.Context, slideTexts []string, opts ImageOptions) (*action.Batch, error) {
	if len(slideTexts) == 0 {
		return nil, errors.New("Add at least one slide before generating images.")
	}
	for _, text := range slideTexts {
		if strings.TrimSpace(text) == "" {
			return nil, errors.New("Every slide needs text before generating images.")
		}
	}

	prompts := make([]string, len(slideTexts))
	copy(prompts, slideTexts)

	batch := s.runner.Start(ctx, len(prompts), func(ctx context.Context, index int) (string, error) {
		return s.GenerateSlideImage(ctx, prompts[index], opts)
	})
	return batch, nil
}

func (s *CarouselService) Batch(id string) (*action.Batch, bool) {
	return s.runner.Get(id)
}

func (s *CarouselService) Connections(ctx context.Context) ([]backend.Connection, error) {
	return s.backend.ListConnections(ctx)
}

func (s *CarouselService) PostCarousel(ctx context.Context, connectionIDs []string, caption, imageURL, videoURL string) (*backend.PostVideoResponse, error) {
	if len(connectionIDs) == 0 {
		return nil, errors.New("Select at least one connection to post to.")
	}
	if strings.TrimSpace(caption) == "" {
		return nil, errors.New("Please write a caption before posting.")
	}

	return s.backend.PostVideo(ctx, backend.PostVideoRequest{
		ConnectionIDs: connectionIDs,
		Caption:       caption,
		ImageURL:      imageURL,
		VideoURL:      videoURL,
	})
}

func (s *CarouselService) PostToCompanyPage(ctx context.Context, caption, imageSource string) (*backend.CompanyPostResponse, error) {
	if strings.TrimSpace(caption) == "" {
		return nil, errors.New("Please write a caption before posting.")
	}

	req := backend.CompanyPostRequest{Caption: caption}
	if strings.HasPrefix(imageSource, "data:") {
		req.ImageBase64 = imageSource
	} else {
		req.ImageURL = imageSource
	}
	return s.backend.PostToCompanyPage(ctx, req)
}
