// Package merchants issues opaque merchant identifiers for ranked stores
// through the Nessie API. Enrichment is a best-effort side channel: a failure
// for one store never affects the others or the ranking itself.
package merchants

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultCategories are the category tags attached to every created merchant.
var DefaultCategories = []string{"food", "groceries", "retail"}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Issuer assigns an opaque merchant identifier to a store name.
type Issuer interface {
	AssignID(ctx context.Context, storeName string) (string, error)
}

// NessieClient creates merchants through the Nessie API and returns their
// identifiers.
type NessieClient struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the Nessie API
	apiKey  string       // API key for the Nessie API
	log     *slog.Logger // Logger for logging operations
}

// Common errors for the Nessie client.
var (
	ErrNessieMissingKey   = errors.New("nessie API key is missing")
	ErrNessieEmptyID      = errors.New("nessie API returned a merchant without an id")
	ErrNessieUnauthorized = errors.New("nessie API unauthorized (invalid API key)")
)

type createMerchantRequest struct {
	Name     string   `json:"name"`
	Category []string `json:"category"`
}

type createMerchantResponse struct {
	ID string `json:"_id"`
}

// NewNessieClient creates a Nessie merchant client. The API key is explicit
// configuration: there is no environment lookup at call time.
func NewNessieClient(baseURL, apiKey string, log *slog.Logger) (*NessieClient, error) {
	if apiKey == "" {
		return nil, ErrNessieMissingKey
	}

	const timeout = 10
	return &NessieClient{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
	}, nil
}

// NewNessieClientWithClient allows injecting a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewNessieClientWithClient(client HTTPClient, baseURL, apiKey string, log *slog.Logger) *NessieClient {
	return &NessieClient{client: client, baseURL: baseURL, apiKey: apiKey, log: log}
}

// AssignID creates a merchant for the given store name and returns its
// identifier. Callers are expected to skip stores that already carry an id,
// so repeated assignment for the same store is never requested.
func (nc *NessieClient) AssignID(ctx context.Context, storeName string) (string, error) {
	nc.log.DebugContext(ctx, "Creating merchant", "store", storeName)

	payload, err := json.Marshal(createMerchantRequest{Name: storeName, Category: DefaultCategories})
	if err != nil {
		return "", fmt.Errorf("failed to marshal merchant payload: %w", err)
	}

	url := fmt.Sprintf("%s/merchants?key=%s", nc.baseURL, nc.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := nc.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute merchant request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrNessieUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		nc.log.ErrorContext(ctx, "Nessie API error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("nessie API returned status %d: %s", resp.StatusCode, string(body))
	}

	var created createMerchantResponse
	if err = json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode merchant response: %w", err)
	}

	if created.ID == "" {
		return "", ErrNessieEmptyID
	}

	nc.log.DebugContext(ctx, "Merchant created", "store", storeName, "merchant_id", created.ID)

	return created.ID, nil
}
