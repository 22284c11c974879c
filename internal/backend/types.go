package backend

import "encoding/json"

type GenerateImageRequest struct {
	Prompt      string `json:"prompt"`
	Model       string `json:"model,omitempty"`
	Size        string `json:"size,omitempty"`
	Quality     string `json:"quality,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	N           int    `json:"n,omitempty"`
}

type GenerateImageResponse struct {
	ImageURL    string `json:"image_url"`
	ImageBase64 string `json:"image_base64"`
}

// Connection is a linked social account usable as a post target.
type Connection struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	IsActive bool   `json:"is_active"`
}

type PostVideoRequest struct {
	ConnectionIDs []string `json:"connection_ids"`
	Caption       string   `json:"caption"`
	ImageURL      string   `json:"image_url,omitempty"`
	VideoURL      string   `json:"video_url,omitempty"`
}

type PostVideoResponse struct {
	Success bool     `json:"success"`
	Posts   []Post   `json:"posts"`
	Errors  []string `json:"errors"`
}

type Post struct {
	PostURL string `json:"post_url"`
}

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string     `json:"message"`
	ConversationHistory []ChatTurn `json:"conversation_history"`
}

type ChatResponse struct {
	Message string `json:"message"`
}

type AddMemoryRequest struct {
	Text       string `json:"text"`
	Collection string `json:"collection"`
}

type AddMemoryResponse struct {
	Success bool `json:"success"`
}

type MemoryUploadResponse struct {
	ResourceID string `json:"resource_id"`
}

type DocumentUploadResponse struct {
	DocumentID string `json:"document_id"`
}

// Competitor is normalized at the decode boundary: the backend returns either
// a plain name string or an object with name and reason fields.
type Competitor struct {
	Name   string `json:"name"`
	Reason string `json:"reason,omitempty"`
}

func (c *Competitor) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Name = name
		c.Reason = ""
		return nil
	}

	var obj struct {
		Name   string `json:"name"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	c.Name = obj.Name
	c.Reason = obj.Reason
	return nil
}

type FindCompetitorsRequest struct {
	DocumentID string `json:"document_id"`
}

type FindCompetitorsResponse struct {
	Competitors []Competitor `json:"competitors"`
}

type CreatePostRequest struct {
	Topic           string `json:"topic"`
	CaptionStyle    string `json:"caption_style,omitempty"`
	AspectRatio     string `json:"aspect_ratio,omitempty"`
	IncludeHashtags bool   `json:"include_hashtags"`
	Platform        string `json:"platform,omitempty"`
}

type CreatePostResponse struct {
	ImageURL    string   `json:"image_url"`
	ImageBase64 string   `json:"image_base64"`
	FullCaption string   `json:"full_caption"`
	Hashtags    []string `json:"hashtags"`
}

type Suggestion struct {
	Topic     string  `json:"topic"`
	Score     float64 `json:"score"`
	Context   string  `json:"context"`
	Reasoning string  `json:"reasoning"`
	Source    string  `json:"source"`
}

type SuggestionsResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

type CompanyPostRequest struct {
	Caption     string `json:"caption"`
	ImageBase64 string `json:"image_base64,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type CompanyPostResponse struct {
	Success bool   `json:"success"`
	PostURL string `json:"post_url"`
	Error   string `json:"error"`
}
