package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/payfolio/payslip-backend-go/internal/config"
)

// Client talks to an HTTP text-recognition engine. The engine accepts a
// multipart document upload and responds with the recognized text.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.OCRConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type recognizeResponse struct {
	Text string `json:"text"`
}

func (c *Client) Recognize(ctx context.Context, document io.Reader, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create multipart form: %w", err)
	}
	if _, err := io.Copy(part, document); err != nil {
		return "", fmt.Errorf("failed to copy document into form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build recognition request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: engine returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var result recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: invalid engine response: %v", ErrUnavailable, err)
	}

	return result.Text, nil
}
