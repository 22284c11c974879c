package core

import (
	"context"
	"errors"
	"strings"

	"github.com/postpilot/studio/internal/backend"
)

const defaultSuggestionCount = 5

// MarketingPost is a generated post ready for display: the image source is
// already resolved, empty when the backend returned no usable reference.
type MarketingPost struct {
	ImageSource string
	Caption     string
	Hashtags    []string
}

type StudioService struct {
	backend *backend.Client
}

func NewStudioService(b *backend.Client) *StudioService {
	return &StudioService{backend: b}
}

func (s *StudioService) CreatePost(ctx context.Context, topic, captionStyle, aspectRatio, platform string, includeHashtags bool) (*MarketingPost, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, errors.New("Please enter a topic before generating a post.")
	}

	resp, err := s.backend.CreateMarketingPost(ctx, backend.CreatePostRequest{
		Topic:           topic,
		CaptionStyle:    captionStyle,
		AspectRatio:     aspectRatio,
		IncludeHashtags: includeHashtags,
		Platform:        platform,
	})
	if err != nil {
		return nil, err
	}

	return &MarketingPost{
		ImageSource: backend.ImageSource(s.backend.BaseURL(), resp.ImageURL, resp.ImageBase64),
		Caption:     resp.FullCaption,
		Hashtags:    resp.Hashtags,
	}, nil
}

func (s *StudioService) TopicSuggestions(ctx context.Context, count int) ([]backend.Suggestion, error) {
	if count < 1 {
		count = defaultSuggestionCount
	}
	// Gateway errors already carry the display string; pass them through.
	return s.backend.TopicSuggestions(ctx, count)
}
