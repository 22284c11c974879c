package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is the gateway to the marketing backend. It owns base URL joining,
// auth-header attachment, and the per-request timeout; every failure it
// returns is an *Error whose message is ready to display.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) GenerateImage(ctx context.Context, req GenerateImageRequest) (*GenerateImageResponse, error) {
	var resp GenerateImageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/image/generate", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListConnections(ctx context.Context) ([]Connection, error) {
	var connections []Connection
	if err := c.doJSON(ctx, http.MethodGet, "/api/connections", nil, nil, &connections); err != nil {
		return nil, err
	}
	return connections, nil
}

func (c *Client) PostVideo(ctx context.Context, req PostVideoRequest) (*PostVideoResponse, error) {
	var resp PostVideoResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/post/video", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat/general", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddMemory(ctx context.Context, text, collection string) error {
	req := AddMemoryRequest{Text: text, Collection: collection}
	var resp AddMemoryResponse
	return c.doJSON(ctx, http.MethodPost, "/api/hyperspell/add-memory", nil, req, &resp)
}

// UploadToMemoryStore forwards a document to the external memory store and
// returns the resource id it was assigned there.
func (c *Client) UploadToMemoryStore(ctx context.Context, filename string, data []byte) (string, error) {
	var resp MemoryUploadResponse
	if err := c.doMultipart(ctx, "/api/hyperspell/upload", filename, data, &resp); err != nil {
		return "", err
	}
	return resp.ResourceID, nil
}

// UploadDocument registers a document with the backend and returns its
// document id, usable for competitor discovery.
func (c *Client) UploadDocument(ctx context.Context, filename string, data []byte) (string, error) {
	var resp DocumentUploadResponse
	if err := c.doMultipart(ctx, "/api/documents/upload", filename, data, &resp); err != nil {
		return "", err
	}
	return resp.DocumentID, nil
}

func (c *Client) FindCompetitors(ctx context.Context, documentID string) ([]Competitor, error) {
	req := FindCompetitorsRequest{DocumentID: documentID}
	var resp FindCompetitorsResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/competitors/find", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.Competitors, nil
}

func (c *Client) CreateMarketingPost(ctx context.Context, req CreatePostRequest) (*CreatePostResponse, error) {
	var resp CreatePostResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/marketing-post/create", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) TopicSuggestions(ctx context.Context, count int) ([]Suggestion, error) {
	query := url.Values{"count": {strconv.Itoa(count)}}
	var resp SuggestionsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/marketing-post/suggestions", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

func (c *Client) PostToCompanyPage(ctx context.Context, req CompanyPostRequest) (*CompanyPostResponse, error) {
	var resp CompanyPostResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/post/linkedin/company", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetEmailNotifications(ctx context.Context, enabled bool) error {
	query := url.Values{"enabled": {strconv.FormatBool(enabled)}}
	return c.doJSON(ctx, http.MethodPut, "/api/user/email-notifications", query, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("backend: marshal request for %s: %w", path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(path, query), body)
	if err != nil {
		return fmt.Errorf("backend: create request for %s: %w", path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.attachAuth(req)

	return c.execute(req, out)
}

func (c *Client) doMultipart(ctx context.Context, path, filename string, data []byte, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("backend: build multipart body for %s: %w", path, err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("backend: write multipart body for %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("backend: finish multipart body for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("backend: create request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	c.attachAuth(req)

	return c.execute(req, out)
}

func (c *Client) execute(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response object at all: the backend is unreachable.
		return &Error{Message: UnreachableMessage}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: UnreachableMessage}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Message: ExtractErrorMessage(respBody), StatusCode: resp.StatusCode}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Message: DefaultErrorMessage, StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) requestURL(path string, query url.Values) string {
	full := c.baseURL + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}

func (c *Client) attachAuth(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
