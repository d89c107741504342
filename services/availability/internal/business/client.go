package business

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client resolves business-level settings owned by the Business service.
// Only the timezone matters to availability resolution.
type Client interface {
	Timezone(ctx context.Context, businessID uuid.UUID) (string, error)
}

// HTTPClient implements the business Client using HTTP
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP business client
func NewHTTPClient(baseURL string) *HTTPClient {
	if baseURL == "" {
		baseURL = "http://localhost:8086" // Default business service URL
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// businessResponse represents the response from the business service
type businessResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	Active   bool   `json:"active"`
}

// Timezone fetches the business's IANA timezone identifier. An empty
// string is a valid answer; the engine falls back to UTC on its own.
func (c *HTTPClient) Timezone(ctx context.Context, businessID uuid.UUID) (string, error) {
	url := fmt.Sprintf("%s/business/businesses/%s", c.baseURL, businessID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("business service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("business %s not found", businessID.String())
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("business service returned status %d", resp.StatusCode)
	}

	var b businessResponse
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return b.Timezone, nil
}

// NoopClient is a no-op implementation for testing or single-zone
// deployments; everything resolves in UTC.
type NoopClient struct{}

// NewNoopClient creates a new no-op business client
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

func (c *NoopClient) Timezone(ctx context.Context, businessID uuid.UUID) (string, error) {
	return "", nil
}
