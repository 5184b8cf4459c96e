// Package sanity is a minimal write client for the hosted Sanity content
// store. Only the two operations the submission pipeline needs are
// implemented: streaming asset upload and document create.
//
// Error bodies arrive as {"error": {"description": "..."}}; they surface as
// *Error so callers can distinguish store rejections from transport failures.
package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/google/uuid"
)

// Store is the two-operation contract the submission pipeline depends on.
// Any store exposing upload-then-create is substitutable.
type Store interface {
	UploadAsset(ctx context.Context, kind, filename, contentType string, data io.Reader) (*Asset, error)
	CreateDocument(ctx context.Context, doc map[string]any) (map[string]any, error)
}

// Asset is the store's record for an uploaded binary, addressed by ID.
type Asset struct {
	ID               string `json:"_id"`
	URL              string `json:"url"`
	OriginalFilename string `json:"originalFilename"`
	MimeType         string `json:"mimeType"`
	Size             int64  `json:"size"`
}

// Config holds the connection settings for a project dataset.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string

	// BaseURL overrides the URL derived from ProjectID and APIVersion.
	// Used by tests and API proxies.
	BaseURL string

	HTTPClient *http.Client
}

// Client issues authenticated write calls against one project dataset.
type Client struct {
	baseURL string
	dataset string
	token   string
	http    *http.Client
}

var _ Store = (*Client)(nil)

// NewClient creates a client for the configured project dataset.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Dataset == "" {
		return nil, fmt.Errorf("sanity: dataset is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("sanity: write token is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.ProjectID == "" {
			return nil, fmt.Errorf("sanity: project ID is required")
		}
		apiVersion := cfg.APIVersion
		if apiVersion == "" {
			apiVersion = "2024-01-01"
		}
		baseURL = fmt.Sprintf("https://%s.api.sanity.io/v%s", cfg.ProjectID, apiVersion)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: baseURL,
		dataset: cfg.Dataset,
		token:   cfg.Token,
		http:    httpClient,
	}, nil
}

// NewClientFromEnv creates a client from SANITY_* environment variables.
func NewClientFromEnv() (*Client, error) {
	return NewClient(Config{
		ProjectID:  os.Getenv("SANITY_PROJECT_ID"),
		Dataset:    getEnvDefault("SANITY_DATASET", "production"),
		APIVersion: os.Getenv("SANITY_API_VERSION"),
		Token:      os.Getenv("SANITY_TOKEN"),
		BaseURL:    os.Getenv("SANITY_API_URL"),
	})
}

// UploadAsset streams data to the asset endpoint and returns the stored
// asset. kind is the asset class, "file" or "image". The request body is the
// raw file stream, so large PDFs are never buffered here.
func (c *Client) UploadAsset(ctx context.Context, kind, filename, contentType string, data io.Reader) (*Asset, error) {
	endpoint := fmt.Sprintf("%s/assets/%ss/%s?filename=%s",
		c.baseURL, kind, c.dataset, url.QueryEscape(filename))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, data)
	if err != nil {
		return nil, fmt.Errorf("sanity: build upload request: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Document Asset `json:"document"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("sanity: unmarshal upload response: %w", err)
	}
	if resp.Document.ID == "" {
		return nil, fmt.Errorf("sanity: upload response missing asset id")
	}
	return &resp.Document, nil
}

// CreateDocument persists a new document via a single create mutation and
// returns the created document, including its server-assigned id.
func (c *Client) CreateDocument(ctx context.Context, doc map[string]any) (map[string]any, error) {
	payload := map[string]any{
		"mutations":     []map[string]any{{"create": doc}},
		"transactionId": uuid.NewString(),
	}
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("sanity: marshal mutation: %w", err)
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s?returnDocuments=true", c.baseURL, c.dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBytes))
	if err != nil {
		return nil, fmt.Errorf("sanity: build mutate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Results []struct {
			ID       string         `json:"id"`
			Document map[string]any `json:"document"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("sanity: unmarshal mutate response: %w", err)
	}
	if len(resp.Results) == 0 || resp.Results[0].Document == nil {
		return nil, fmt.Errorf("sanity: mutate response contained no document")
	}
	return resp.Results[0].Document, nil
}

// do sends an authenticated request and returns the response body, mapping
// non-2xx responses to *Error.
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sanity: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sanity: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp.StatusCode, body)
	}
	return body, nil
}

func parseError(status int, body []byte) *Error {
	var resp struct {
		Error struct {
			Description string `json:"description"`
		} `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &resp)

	msg := resp.Error.Description
	if msg == "" {
		msg = resp.Message
	}
	if msg == "" {
		msg = "unknown error"
	}
	return &Error{StatusCode: status, Msg: msg}
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
