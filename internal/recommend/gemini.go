// Package recommend asks a generative-text service which of the known stores
// carry the items in a free-text query. The closed candidate list is part of
// the request contract: the model may only answer with stores it was given.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// geminiBaseURL is the generative language API endpoint.
const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// systemPrompt pins the model to the structured output the pipeline needs.
const systemPrompt = `You are ShopSmartAI, a shopping optimization assistant.
Given a shopping request and a closed list of candidate stores, recommend which
stores carry the requested products. Only use stores from the provided list.
Output JSON of the form:
{
  "recommended_stores": {
    "store_1": ["item1", "item2"],
    "store_2": ["item3"]
  },
  "items_to_buy": ["item1", "item2", "item3"]
}`

// Recommendation maps each recommended store name to the items it covers,
// plus the flat list of everything to buy across stores. Stores that were not
// recommended are absent from the mapping.
type Recommendation struct {
	Stores     map[string][]string `json:"recommended_stores"`
	ItemsToBuy []string            `json:"items_to_buy"`
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GeminiRecommender delegates store recommendation to the Gemini API.
type GeminiRecommender struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the generative language API
	apiKey  string        // API key for the generative language API
	model   string        // Model name, e.g. "gemini-2.5-pro"
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// Common errors for the Gemini recommender.
var (
	ErrRecommendationParse = errors.New("recommendation service returned a non-conforming response")
	ErrUnknownStore        = errors.New("recommendation service named a store outside the candidate set")
	ErrGeminiEmptyResponse = errors.New("gemini API returned empty response")
	ErrGeminiUnauthorized  = errors.New("gemini API unauthorized (invalid API key)")
)

// geminiRequest is the generateContent request body (subset used here).
type geminiRequest struct {
	SystemInstruction geminiContent    `json:"system_instruction"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"response_mime_type"`
}

// geminiResponse is the generateContent response body (subset used here).
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewGeminiRecommender creates a recommender backed by the public Gemini API.
func NewGeminiRecommender(apiKey, model string, requestsPerSecond int, log *slog.Logger) *GeminiRecommender {
	const timeout = 60

	return &GeminiRecommender{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: geminiBaseURL,
		apiKey:  apiKey,
		model:   model,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// NewGeminiRecommenderWithClient allows injecting a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewGeminiRecommenderWithClient(
	client HTTPClient,
	apiKey, model string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *GeminiRecommender {
	return &GeminiRecommender{
		client:  client,
		baseURL: geminiBaseURL,
		apiKey:  apiKey,
		model:   model,
		log:     log,
		limiter: limiter,
	}
}

// Recommend asks the model which of the candidate stores cover the items in
// query. The response is decoded strictly: a malformed body or a store
// outside the candidate set fails the request, since ranking without a valid
// recommendation is meaningless.
func (gr *GeminiRecommender) Recommend(
	ctx context.Context,
	query string,
	candidates []string,
) (*Recommendation, error) {
	if err := gr.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	gr.log.DebugContext(ctx, "Requesting store recommendation", "query", query, "candidates", len(candidates))

	userPrompt := fmt.Sprintf("%s\nHere are the stores you can choose from: %s",
		query, strings.Join(candidates, ", "))

	reqBody := geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: userPrompt}}}},
		GenerationConfig:  generationConfig{ResponseMIMEType: "application/json"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recommendation request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", gr.baseURL, gr.model, gr.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := gr.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute recommendation request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrGeminiUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		gr.log.ErrorContext(ctx, "Gemini API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("gemini API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope geminiResponse
	if err = json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecommendationParse, err)
	}

	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return nil, ErrGeminiEmptyResponse
	}

	return gr.parseRecommendation(envelope.Candidates[0].Content.Parts[0].Text, candidates)
}

// parseRecommendation strictly decodes the model's JSON payload and rejects
// stores the model invented outside the candidate list it was given.
func (gr *GeminiRecommender) parseRecommendation(text string, candidates []string) (*Recommendation, error) {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.DisallowUnknownFields()

	var rec Recommendation
	if err := decoder.Decode(&rec); err != nil {
		gr.log.Error("Failed to decode recommendation payload", "error", err, "payload", text)
		return nil, fmt.Errorf("%w: %w", ErrRecommendationParse, err)
	}

	if rec.Stores == nil {
		return nil, fmt.Errorf("%w: missing recommended_stores mapping", ErrRecommendationParse)
	}

	known := make(map[string]bool, len(candidates))
	for _, name := range candidates {
		known[name] = true
	}
	for name := range rec.Stores {
		if !known[name] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStore, name)
		}
	}

	return &rec, nil
}
