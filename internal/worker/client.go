// ABOUTME: HTTP client for the document worker service (file parsing and docx generation)
// ABOUTME: Implements the pipeline's document-conversion port plus file ingestion
package worker

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"redpen/internal/models"
)

// Client talks to the document worker over its JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a worker client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type parseRequest struct {
	FileContent string `json:"file_content"`
	FileType    string `json:"file_type"`
}

type parseResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

type generateRequest struct {
	Original    string              `json:"original"`
	Corrected   string              `json:"corrected"`
	FactChanges []models.FactChange `json:"fact_changes,omitempty"`
}

type generateResponse struct {
	CleanDoc string `json:"clean_doc"`
	DiffDoc  string `json:"diff_doc"`
	Error    string `json:"error"`
}

// ParseFile extracts plain text from an uploaded document.
func (c *Client) ParseFile(ctx context.Context, content []byte, format models.InputFormat) (string, error) {
	req := parseRequest{
		FileContent: base64.StdEncoding.EncodeToString(content),
		FileType:    string(format),
	}

	var resp parseResponse
	if err := c.post(ctx, "/parse", req, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("failed to parse file: %s", resp.Error)
	}
	return resp.Text, nil
}

// Generate implements the document-conversion port: it renders the clean
// and tracked-changes documents for a finished correction run.
func (c *Client) Generate(ctx context.Context, original, corrected string, factChanges []models.FactChange) ([]byte, []byte, error) {
	req := generateRequest{
		Original:    original,
		Corrected:   corrected,
		FactChanges: factChanges,
	}

	var resp generateResponse
	if err := c.post(ctx, "/generate", req, &resp); err != nil {
		return nil, nil, err
	}
	if resp.Error != "" {
		return nil, nil, fmt.Errorf("worker: %s", resp.Error)
	}

	cleanDoc, err := base64.StdEncoding.DecodeString(resp.CleanDoc)
	if err != nil {
		return nil, nil, fmt.Errorf("worker: decode clean doc: %w", err)
	}
	diffDoc, err := base64.StdEncoding.DecodeString(resp.DiffDoc)
	if err != nil {
		return nil, nil, fmt.Errorf("worker: decode diff doc: %w", err)
	}
	return cleanDoc, diffDoc, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("worker: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("worker: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("worker: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("worker: http %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("worker: decode response: %w", err)
	}
	return nil
}
