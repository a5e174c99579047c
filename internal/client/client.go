// Package client provides a client for the envschema check service.
// It handles authentication, request execution, and response parsing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/nauticalab/envschema/internal/api"
	"github.com/nauticalab/envschema/pkg/schema"
)

// DefaultTimeout is the default HTTP client timeout
const DefaultTimeout = 30 * time.Second

// Client represents an HTTP client for the check service
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	tokenPath  string
	authType   string
}

// ClientConfig holds configuration for the client. Token takes precedence
// over TokenPath; with neither, requests are sent unauthenticated.
type ClientConfig struct {
	BaseURL   string
	Token     string
	TokenPath string
	Timeout   time.Duration
	AuthType  string
}

// NewClient creates a new check service client
func NewClient(config ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		token:     config.Token,
		tokenPath: config.TokenPath,
		authType:  config.AuthType,
	}
}

// readToken returns the configured token, reading it from tokenPath when set
func (c *Client) readToken() (string, error) {
	if c.token != "" || c.tokenPath == "" {
		return c.token, nil
	}
	tokenBytes, err := os.ReadFile(c.tokenPath)
	if err != nil {
		return "", fmt.Errorf("failed to read token from %s: %w", c.tokenPath, err)
	}
	return strings.TrimSpace(string(tokenBytes)), nil
}

// doRequest performs an HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	token, err := c.readToken()
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		if c.authType != "" {
			req.Header.Set("X-Auth-Type", c.authType)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// readBody reads the response and turns HTTP errors into Go errors
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(bodyBytes, &errResp); err != nil || errResp.Message == "" {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
		}
		return nil, fmt.Errorf("API error: %s (code: %d)", errResp.Message, errResp.Code)
	}

	return bodyBytes, nil
}

// parseResponse parses the HTTP response into the target structure
func parseResponse(resp *http.Response, target any) error {
	bodyBytes, err := readBody(resp)
	if err != nil {
		return err
	}

	if target != nil {
		if err := json.Unmarshal(bodyBytes, target); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Health checks the health of the check service
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return nil, err
	}

	var health api.HealthResponse
	if err := parseResponse(resp, &health); err != nil {
		return nil, err
	}

	return &health, nil
}

// Version retrieves version information from the check service
func (c *Client) Version(ctx context.Context) (*api.VersionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/version", nil)
	if err != nil {
		return nil, err
	}

	var version api.VersionResponse
	if err := parseResponse(resp, &version); err != nil {
		return nil, err
	}

	return &version, nil
}

// Template retrieves the help text of the served schema
func (c *Client) Template(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/template", nil)
	if err != nil {
		return "", err
	}

	body, err := readBody(resp)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Check validates snapshot against the served schema. withValues asks for
// the parsed values, which come back with secrets redacted.
func (c *Client) Check(ctx context.Context, snapshot schema.Snapshot, withValues bool) (*api.CheckResponse, error) {
	path := "/api/v1/check"
	if withValues {
		path += "?" + url.Values{"values": {"true"}}.Encode()
	}

	if snapshot == nil {
		snapshot = schema.Snapshot{}
	}
	resp, err := c.doRequest(ctx, http.MethodPost, path, snapshot)
	if err != nil {
		return nil, err
	}

	var checkResp api.CheckResponse
	if err := parseResponse(resp, &checkResp); err != nil {
		return nil, err
	}

	return &checkResp, nil
}
