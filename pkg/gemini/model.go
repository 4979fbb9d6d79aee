package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/moni-ai/moni-insight/pkg/vertex"
)

var modelScopes = []string{"https://www.googleapis.com/auth/cloud-platform"}

// ModelConfig identifies a Vertex publisher model. All identifying fields
// are required; validation names the first missing one.
type ModelConfig struct {
	ProjectID   string
	LocationID  string
	APIEndpoint string
	// Model defaults to DefaultModel.
	Model string
}

func (cfg *ModelConfig) validate() error {
	switch {
	case cfg.ProjectID == "":
		return fmt.Errorf("missing required field: project_id")
	case cfg.LocationID == "":
		return fmt.Errorf("missing required field: location_id")
	case cfg.APIEndpoint == "":
		return fmt.Errorf("missing required field: api_endpoint")
	}
	return nil
}

// ModelClient calls Vertex publisher model endpoints with a bearer
// credential.
type ModelClient struct {
	api     *vertex.Client
	baseURL string
	path    string
}

// NewModelClient creates a publisher model client.
func NewModelClient(api *vertex.Client, cfg ModelConfig) (*ModelClient, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	baseURL := cfg.APIEndpoint
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	return &ModelClient{
		api:     api,
		baseURL: baseURL,
		path: fmt.Sprintf("/v1beta1/projects/%s/locations/%s/publishers/google/models/%s",
			cfg.ProjectID, cfg.LocationID, cfg.Model),
	}, nil
}

// CountTokens returns the model's token count for the prompt.
func (c *ModelClient) CountTokens(ctx context.Context, prompt string) (int, error) {
	req := &CountTokensRequest{
		Contents: Content{
			Role:  "user",
			Parts: []Part{{Text: prompt}},
		},
	}

	url := fmt.Sprintf("%s%s:countTokens", c.baseURL, c.path)
	resp, err := c.api.Post(ctx, modelScopes, url, req)
	if err != nil {
		return 0, err
	}

	var countResp CountTokensResponse
	if err := vertex.DecodeJSON(resp, &countResp); err != nil {
		return 0, err
	}
	return countResp.TotalTokens, nil
}
