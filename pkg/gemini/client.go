// Package gemini provides clients for the generative-language API: API-key
// access for text generation and embeddings, and bearer-token access to the
// Vertex publisher model endpoints.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/moni-ai/moni-insight/pkg/utils"
	"github.com/moni-ai/moni-insight/pkg/vertex"
)

// ErrNoAnswer is returned when the model produced no candidate text for a
// prompt. Callers treat it as an empty result, not a failure.
var ErrNoAnswer = errors.New("no answer from Gemini")

// DefaultBaseURL is the production generative-language endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// Default models for generation and embedding.
const (
	DefaultModel          = "gemini-pro"
	DefaultEmbeddingModel = "text-embedding-004"
)

// ClientConfig configures the API-key client.
type ClientConfig struct {
	// APIKey authenticates every request. Required.
	APIKey string
	// Model defaults to DefaultModel.
	Model string
	// EmbeddingModel defaults to DefaultEmbeddingModel.
	EmbeddingModel string
	// BaseURL defaults to DefaultBaseURL. Overridden in tests.
	BaseURL string
}

// Client calls the generative-language API with an API key.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	model          string
	embeddingModel string
}

// NewClient creates a generative-language client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{
		httpClient:     utils.NewDefaultHTTPClient(),
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s%s?key=%s", c.baseURL, path, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &vertex.TransportError{Err: err}
	}
	return vertex.DecodeJSON(resp, out)
}

// GenerateContent sends the prompt as a single user turn and returns the
// first candidate's text. An empty candidate set or a candidate without text
// returns ErrNoAnswer.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	req := &GenerateContentRequest{
		Contents: []Content{
			{
				Role:  "user",
				Parts: []Part{{Text: prompt}},
			},
		},
	}

	var resp GenerateContentResponse
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
	if err := c.post(ctx, path, req, &resp); err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 {
		return "", ErrNoAnswer
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", ErrNoAnswer
}

// EmbedContent returns one embedding vector per input text, in input order.
func (c *Client) EmbedContent(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("at least one text is required")
	}

	req := &BatchEmbedContentsRequest{}
	for _, text := range texts {
		req.Requests = append(req.Requests, EmbedContentRequest{
			Model:   "models/" + c.embeddingModel,
			Content: Content{Parts: []Part{{Text: text}}},
		})
	}

	var resp BatchEmbedContentsResponse
	path := fmt.Sprintf("/v1beta/models/%s:batchEmbedContents", c.embeddingModel)
	if err := c.post(ctx, path, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}
	vectors := make([][]float64, len(resp.Embeddings))
	for i, embedding := range resp.Embeddings {
		vectors[i] = embedding.Values
	}
	return vectors, nil
}
