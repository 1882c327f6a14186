// Package server exposes the ranking pipeline over HTTP. It is plumbing
// around the pipeline: parse and default the inputs, run one request-scoped
// ranking, translate pipeline errors to status codes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopsmart-ai/scout/internal/models"
	"github.com/shopsmart-ai/scout/internal/ranking"
	"github.com/shopsmart-ai/scout/internal/recommend"
	"github.com/shopsmart-ai/scout/internal/service"
)

// Pipeline runs one aggregation-and-ranking request to completion.
type Pipeline interface {
	RankStores(ctx context.Context, req service.RankRequest) (*models.RankedResult, error)
}

// Server handles inbound ranking requests.
type Server struct {
	log            *slog.Logger       // Logger for logging request handling
	pipeline       Pipeline           // The ranking pipeline
	defaultCenter  models.Coordinates // Center used when the client omits one
	defaultWeights models.Weights     // Weights used when the client omits them
}

// rankResponse is the JSON body returned for a successful ranking.
type rankResponse struct {
	RequestID       string                  `json:"request_id"`
	Stores          []models.StoreCandidate `json:"stores"`
	ItemsToBuy      []string                `json:"items_to_buy"`
	StorePlan       []string                `json:"store_plan"`
	TotalCandidates int                     `json:"total_candidates"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// New creates the API server.
func New(log *slog.Logger, pipeline Pipeline, defaultCenter models.Coordinates, defaultWeights models.Weights) *Server {
	return &Server{
		log:            log,
		pipeline:       pipeline,
		defaultCenter:  defaultCenter,
		defaultWeights: defaultWeights,
	}
}

// Routes returns the request mux for the ranking API.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/rank", s.handleRank)
	return mux
}

// handleRank serves one ranking request.
//
// Query parameters:
// - radius: search radius in kilometers, required, > 0.
// - query: free-text item query, required.
// - lat, lng: optional center override (both or neither).
// - w_price, w_time, w_rating: optional per-signal weights.
func (s *Server) handleRank(writer http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	requestID := uuid.NewString()
	log := s.log.With("request_id", requestID)

	radius, err := strconv.ParseFloat(req.URL.Query().Get("radius"), 64)
	if err != nil || radius <= 0 {
		s.writeError(ctx, writer, requestID, http.StatusBadRequest, "radius must be a positive number of kilometers")
		return
	}

	query := req.URL.Query().Get("query")
	if query == "" {
		s.writeError(ctx, writer, requestID, http.StatusBadRequest, "query must not be empty")
		return
	}

	center, err := s.parseCenter(req)
	if err != nil {
		s.writeError(ctx, writer, requestID, http.StatusBadRequest, err.Error())
		return
	}

	weights, err := s.parseWeights(req)
	if err != nil {
		s.writeError(ctx, writer, requestID, http.StatusBadRequest, err.Error())
		return
	}

	log.InfoContext(ctx, "Ranking request received", "radius_km", radius, "query", query)

	result, err := s.pipeline.RankStores(ctx, service.RankRequest{
		Center:   center,
		RadiusKm: radius,
		Query:    query,
		Weights:  weights,
	})
	if err != nil {
		log.ErrorContext(ctx, "Ranking request failed", "error", err)
		s.writeError(ctx, writer, requestID, statusFor(err), err.Error())
		return
	}

	s.writeJSON(ctx, writer, http.StatusOK, rankResponse{
		RequestID:       requestID,
		Stores:          result.Stores,
		ItemsToBuy:      result.ItemsToBuy,
		StorePlan:       result.StorePlan,
		TotalCandidates: result.TotalCandidates,
	})
}

// parseCenter returns the client-provided center or the configured default.
// A lone lat or lng is rejected rather than silently paired with a default.
func (s *Server) parseCenter(req *http.Request) (models.Coordinates, error) {
	latRaw := req.URL.Query().Get("lat")
	lngRaw := req.URL.Query().Get("lng")

	if latRaw == "" && lngRaw == "" {
		return s.defaultCenter, nil
	}
	if latRaw == "" || lngRaw == "" {
		return models.Coordinates{}, errors.New("lat and lng must be provided together")
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return models.Coordinates{}, errors.New("lat must be a number")
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return models.Coordinates{}, errors.New("lng must be a number")
	}

	return models.Coordinates{Latitude: lat, Longitude: lng}, nil
}

// parseWeights returns the client-provided weights, falling back to the
// configured defaults per signal.
func (s *Server) parseWeights(req *http.Request) (models.Weights, error) {
	weights := s.defaultWeights

	for _, entry := range []struct {
		param  string
		target *float64
	}{
		{"w_price", &weights.Price},
		{"w_time", &weights.Time},
		{"w_rating", &weights.Rating},
	} {
		raw := req.URL.Query().Get(entry.param)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			return models.Weights{}, errors.New(entry.param + " must be a non-negative number")
		}
		*entry.target = value
	}

	return weights, nil
}

// statusFor maps pipeline errors to response codes: a violated external
// contract is a bad gateway, anything else an internal error.
func statusFor(err error) int {
	if errors.Is(err, recommend.ErrRecommendationParse) ||
		errors.Is(err, recommend.ErrUnknownStore) ||
		errors.Is(err, ranking.ErrIncompleteCandidate) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(ctx context.Context, writer http.ResponseWriter, requestID string, status int, msg string) {
	s.writeJSON(ctx, writer, status, errorResponse{RequestID: requestID, Error: msg})
}

func (s *Server) writeJSON(ctx context.Context, writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		s.log.ErrorContext(ctx, "failed to write reply", "error", err)
	}
}
