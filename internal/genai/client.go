package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrMissingAPIKey is returned before any network call when no credential is
// configured.
var ErrMissingAPIKey = errors.New("generation API key is not configured")

// APIError is a non-2xx response from the provider.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("generation API error %d (%s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("generation API error %d", e.StatusCode)
}

// Client is a typed HTTP client for a generateContent-style provider API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a provider client. An empty apiKey is allowed; calls will
// fail with ErrMissingAPIKey until one is set.
func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// NewClientFromEnv reads GENAI_API_KEY and optionally GENAI_BASE_URL.
func NewClientFromEnv() *Client {
	c := NewClient(os.Getenv("GENAI_API_KEY"))
	if base := os.Getenv("GENAI_BASE_URL"); base != "" {
		c.baseURL = base
	}
	return c
}

// WithBaseURL overrides the provider endpoint, mainly for tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

// Configured reports whether an API credential is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// GenerateContent performs one generation call against the named model and
// returns the concatenated text of the first candidate. An empty string with
// nil error is a valid outcome: the model answered with no text.
func (c *Client) GenerateContent(ctx context.Context, req GenerateRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	if req.Model == "" {
		return "", errors.New("model identifier is required")
	}
	if len(req.Parts) == 0 {
		return "", errors.New("at least one input part is required")
	}

	payload := generateContentRequest{
		Contents: []content{{Role: "user", Parts: req.Parts}},
		GenerationConfig: &generationConfig{
			Temperature: req.Temperature,
		},
	}
	if req.SystemInstruction != "" {
		payload.SystemInstruction = &content{Parts: []Part{{Text: req.SystemInstruction}}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("generation call to %s failed: %w", req.Model, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %w", err)
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if parsed.Error != nil {
			apiErr.Status = parsed.Error.Status
			apiErr.Message = parsed.Error.Message
		}
		return "", apiErr
	}

	if len(parsed.Candidates) == 0 {
		return "", nil
	}
	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
