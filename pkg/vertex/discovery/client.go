// Package discovery provides typed clients for the Discovery Engine REST
// API: data store lifecycle, search, answer, chunk retrieval, and
// long-running operation polling.
package discovery

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/moni-ai/moni-insight/pkg/vertex"
)

// Scope is the OAuth scope every Discovery Engine call requires.
const Scope = "https://www.googleapis.com/auth/cloud-platform"

// DefaultBaseURL is the production Discovery Engine endpoint.
const DefaultBaseURL = "https://discoveryengine.googleapis.com"

// The service only operates in the global location; regional endpoints are
// not supported here.
const Location = "global"

// DefaultCollection is the collection most data stores live under.
const DefaultCollection = "default_collection"

var scopes = []string{Scope}

// ClientConfig identifies the project, collection, and engine a Client
// operates on.
type ClientConfig struct {
	// ProjectID is the Google Cloud project identifier. Required.
	ProjectID string
	// Collection defaults to DefaultCollection.
	Collection string
	// EngineID identifies the search engine whose serving config handles
	// Search and Answer calls.
	EngineID string
	// BaseURL defaults to DefaultBaseURL. Overridden in tests.
	BaseURL string
}

// Client issues typed calls against the Discovery Engine API.
type Client struct {
	api        *vertex.Client
	baseURL    string
	projectID  string
	collection string
	engineID   string
}

// NewClient creates a Discovery Engine client on top of an authenticated API
// client.
func NewClient(api *vertex.Client, cfg ClientConfig) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("project ID is required")
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{
		api:        api,
		baseURL:    cfg.BaseURL,
		projectID:  cfg.ProjectID,
		collection: cfg.Collection,
		engineID:   cfg.EngineID,
	}, nil
}

func (c *Client) collectionPath() string {
	return fmt.Sprintf("projects/%s/locations/%s/collections/%s", c.projectID, Location, c.collection)
}

func (c *Client) servingConfigPath() string {
	return fmt.Sprintf("projects/%s/locations/%s/collections/%s/engines/%s/servingConfigs/default_serving_config",
		c.projectID, Location, DefaultCollection, c.engineID)
}

// CreateDataStore creates a data store under the configured collection. The
// remote service processes the creation asynchronously; the returned
// Operation can be polled until done.
func (c *Client) CreateDataStore(ctx context.Context, dataStoreID string, createAdvancedSiteSearch bool, store *DataStore) (*Operation, error) {
	if dataStoreID == "" {
		return nil, fmt.Errorf("data store ID is required")
	}

	q := url.Values{}
	q.Set("dataStoreId", dataStoreID)
	q.Set("createAdvancedSiteSearch", strconv.FormatBool(createAdvancedSiteSearch))
	rawURL := fmt.Sprintf("%s/v1beta/%s/dataStores?%s", c.baseURL, c.collectionPath(), q.Encode())

	resp, err := c.api.Post(ctx, scopes, rawURL, store)
	if err != nil {
		return nil, err
	}

	var op Operation
	if err := vertex.DecodeJSON(resp, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// GetDataStore retrieves a data store by ID.
func (c *Client) GetDataStore(ctx context.Context, dataStoreID string) (*DataStore, error) {
	if dataStoreID == "" {
		return nil, fmt.Errorf("data store ID is required")
	}

	rawURL := fmt.Sprintf("%s/v1/%s/dataStores", c.baseURL, c.collectionPath())
	resp, err := c.api.Get(ctx, scopes, rawURL, map[string]string{
		"data_store_id": dataStoreID,
	})
	if err != nil {
		return nil, err
	}

	var store DataStore
	if err := vertex.DecodeJSON(resp, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

// DeleteDataStore deletes a data store by ID. Deletion is asynchronous; the
// returned Operation can be polled until done. A missing ID surfaces as a
// StatusError with the service's 404 payload.
func (c *Client) DeleteDataStore(ctx context.Context, dataStoreID string) (*Operation, error) {
	if dataStoreID == "" {
		return nil, fmt.Errorf("data store ID is required")
	}

	rawURL := fmt.Sprintf("%s/v1/%s/dataStores/%s", c.baseURL, c.collectionPath(), dataStoreID)
	resp, err := c.api.Delete(ctx, scopes, rawURL, nil)
	if err != nil {
		return nil, err
	}

	var op Operation
	if err := vertex.DecodeJSON(resp, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// SetupDataConnector wires an external data source, such as a Cloud Storage
// bucket, into a new collection.
func (c *Client) SetupDataConnector(ctx context.Context, req *SetupDataConnectorRequest) (*Operation, error) {
	rawURL := fmt.Sprintf("%s/v1/projects/%s/locations/%s/global:setUpDataConnector", c.baseURL, c.projectID, Location)
	resp, err := c.api.Post(ctx, scopes, rawURL, req)
	if err != nil {
		return nil, err
	}

	var op Operation
	if err := vertex.DecodeJSON(resp, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// Search runs a query against the configured engine's default serving
// config.
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	rawURL := fmt.Sprintf("%s/v1beta/%s:search", c.baseURL, c.servingConfigPath())
	resp, err := c.api.Post(ctx, scopes, rawURL, req)
	if err != nil {
		return nil, err
	}

	var searchResp SearchResponse
	if err := vertex.DecodeJSON(resp, &searchResp); err != nil {
		return nil, err
	}
	return &searchResp, nil
}

// Answer runs an answer-generation query against the configured engine's
// default serving config.
func (c *Client) Answer(ctx context.Context, req *AnswerRequest) (*AnswerResponse, error) {
	rawURL := fmt.Sprintf("%s/v1beta/%s:answer", c.baseURL, c.servingConfigPath())
	resp, err := c.api.Post(ctx, scopes, rawURL, req)
	if err != nil {
		return nil, err
	}

	var answerResp AnswerResponse
	if err := vertex.DecodeJSON(resp, &answerResp); err != nil {
		return nil, err
	}
	return &answerResp, nil
}

// SearchChunks runs a chunk-mode query against a data store's default search
// serving config.
func (c *Client) SearchChunks(ctx context.Context, dataStoreID, query string) (*SearchChunksResponse, error) {
	if dataStoreID == "" {
		return nil, fmt.Errorf("data store ID is required")
	}

	rawURL := fmt.Sprintf("%s/v1alpha/%s/dataStores/%s/servingConfigs/default_search:search",
		c.baseURL, c.collectionPath(), dataStoreID)
	var params map[string]string
	if query != "" {
		params = map[string]string{"query": query}
	}
	resp, err := c.api.Get(ctx, scopes, rawURL, params)
	if err != nil {
		return nil, err
	}

	var chunksResp SearchChunksResponse
	if err := vertex.DecodeJSON(resp, &chunksResp); err != nil {
		return nil, err
	}
	return &chunksResp, nil
}

// ListChunks lists the content chunks of a document in a data store branch.
func (c *Client) ListChunks(ctx context.Context, dataStoreID, branch, documentID string) (*ListChunksResponse, error) {
	if dataStoreID == "" || documentID == "" {
		return nil, fmt.Errorf("data store ID and document ID are required")
	}

	rawURL := fmt.Sprintf("%s/v1/%s/dataStores/%s/branches/%s/documents/%s/chunks",
		c.baseURL, c.collectionPath(), dataStoreID, branch, documentID)
	resp, err := c.api.Get(ctx, scopes, rawURL, nil)
	if err != nil {
		return nil, err
	}

	var chunksResp ListChunksResponse
	if err := vertex.DecodeJSON(resp, &chunksResp); err != nil {
		return nil, err
	}
	return &chunksResp, nil
}

// ListDocuments lists the documents indexed in a data store branch.
func (c *Client) ListDocuments(ctx context.Context, dataStoreID, branch string) (*ListDocumentsResponse, error) {
	if dataStoreID == "" {
		return nil, fmt.Errorf("data store ID is required")
	}

	rawURL := fmt.Sprintf("%s/v1/%s/dataStores/%s/branches/%s/documents",
		c.baseURL, c.collectionPath(), dataStoreID, branch)
	resp, err := c.api.Get(ctx, scopes, rawURL, nil)
	if err != nil {
		return nil, err
	}

	var docsResp ListDocumentsResponse
	if err := vertex.DecodeJSON(resp, &docsResp); err != nil {
		return nil, err
	}
	return &docsResp, nil
}

// GetOperation fetches a snapshot of a long-running operation by its fully
// qualified name, e.g.
// "projects/p/locations/global/collections/c/dataStores/ds/operations/op-1".
func (c *Client) GetOperation(ctx context.Context, name string) (*Operation, error) {
	if name == "" {
		return nil, fmt.Errorf("operation name is required")
	}

	rawURL := fmt.Sprintf("%s/v1/%s", c.baseURL, name)
	resp, err := c.api.Get(ctx, scopes, rawURL, nil)
	if err != nil {
		return nil, err
	}

	var op Operation
	if err := vertex.DecodeJSON(resp, &op); err != nil {
		return nil, err
	}
	return &op, nil
}
