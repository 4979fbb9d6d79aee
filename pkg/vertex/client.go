// Package vertex provides an authenticated HTTP client for Google Cloud AI
// APIs. The client attaches bearer credentials, encodes request bodies, and
// returns the raw response; interpreting the status code and body is the
// caller's job.
package vertex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/moni-ai/moni-insight/pkg/gcpauth"
	"github.com/moni-ai/moni-insight/pkg/utils"
)

// Client is an HTTP client that authenticates every request with a bearer
// credential from the provider.
type Client struct {
	httpClient *http.Client
	provider   *gcpauth.Provider
}

// NewClient creates a client using the shared default HTTP client.
func NewClient(provider *gcpauth.Provider) *Client {
	return NewClientWithHTTPClient(provider, utils.NewDefaultHTTPClient())
}

// NewClientWithHTTPClient creates a client with a caller-supplied HTTP
// client, typically to adjust the transport timeout.
func NewClientWithHTTPClient(provider *gcpauth.Provider, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		provider:   provider,
	}
}

// Post sends a JSON-encoded body to the URL with a bearer credential for the
// scopes. The caller owns the response and must close its body.
func (c *Client) Post(ctx context.Context, scopes []string, rawURL string, body interface{}) (*http.Response, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", rawURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(ctx, scopes, req)
}

// Get sends a GET request with the params appended as URL-encoded query
// parameters.
func (c *Client) Get(ctx context.Context, scopes []string, rawURL string, params map[string]string) (*http.Response, error) {
	req, err := c.newQueryRequest(ctx, "GET", rawURL, params)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, scopes, req)
}

// Delete sends a DELETE request with the params appended as URL-encoded query
// parameters.
func (c *Client) Delete(ctx context.Context, scopes []string, rawURL string, params map[string]string) (*http.Response, error) {
	req, err := c.newQueryRequest(ctx, "DELETE", rawURL, params)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, scopes, req)
}

func (c *Client) newQueryRequest(ctx context.Context, method, rawURL string, params map[string]string) (*http.Request, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &URLError{URL: rawURL, Err: err}
	}

	q := u.Query()
	for key, value := range params {
		q.Set(key, value)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, scopes []string, req *http.Request) (*http.Response, error) {
	cred, err := c.provider.Token(ctx, scopes)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+cred.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return resp, nil
}

// validateURL rejects URLs without a scheme or host before any token
// acquisition or network I/O.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return &URLError{URL: rawURL, Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return &URLError{URL: rawURL, Err: fmt.Errorf("missing scheme or host")}
	}
	return nil
}

// CheckStatus converts a non-2xx response into a StatusError, consuming and
// preserving the body verbatim. On success the response is returned untouched.
func CheckStatus(resp *http.Response) (*http.Response, error) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return nil, &StatusError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}

// DecodeJSON checks the response status, decodes the body into v, and closes
// the body.
func DecodeJSON(resp *http.Response, v interface{}) error {
	resp, err := CheckStatus(resp)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
