package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/shopsmart-ai/scout/internal/models"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the store ranking service.
//
// Fields:
// - Env: The current environment (local, development, production).
// - APIPort: The port for the ranking HTTP API.
// - HealthPort: The port for the monitoring server (healthz, metrics).
// - MapsAPIKey: The Google Maps API key (places lookup, travel times).
// - GeminiAPIKey: The API key for the recommendation service.
// - GeminiModel: The generative model used for recommendations.
// - NessieAPIKey: The merchant identity service key (optional).
// - NessieBaseURL: The merchant identity service base URL.
// - PlaceType: The place-type filter used for nearby lookups.
// - FetchWorkers: The number of concurrent nearby-search workers.
// - DefaultCenter: The center coordinate used when the caller supplies none.
// - DefaultWeights: The per-signal weights used when the caller supplies none.
type Config struct {
	Env            string
	APIPort        int
	HealthPort     int
	MapsAPIKey     string
	GeminiAPIKey   string
	GeminiModel    string
	NessieAPIKey   string
	NessieBaseURL  string
	PlaceType      string
	FetchWorkers   int
	DefaultCenter  models.Coordinates
	DefaultWeights models.Weights
}

// Missing-credential errors. Each required external service has its own
// sentinel so the failure names the credential that must be provided.
var (
	ErrMissingMapsKey   = errors.New("GMAPS_API_KEY is not set: nearby place lookup requires a Google Maps API key")
	ErrMissingGeminiKey = errors.New("GEMINI_API_KEY is not set: store recommendation requires a Gemini API key")
)

// MustLoad loads the configuration from the environment (a .env file is read
// first when present) and panics on malformed values. Credential presence is
// checked separately by Validate so callers can decide how to fail.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.AutomaticEnv()

	vpr.SetDefault("SCOUT_ENV", "production")
	vpr.SetDefault("SCOUT_API_PORT", 8080)
	vpr.SetDefault("SCOUT_HEALTH_PORT", 9090)
	vpr.SetDefault("SCOUT_PLACE_TYPE", "store")
	vpr.SetDefault("SCOUT_FETCH_WORKERS", 5)
	// Center used by the original deployment (Austin, TX) when the client
	// does not provide one.
	vpr.SetDefault("SCOUT_DEFAULT_LAT", 30.2672)
	vpr.SetDefault("SCOUT_DEFAULT_LNG", -97.7431)
	vpr.SetDefault("GEMINI_MODEL", "gemini-2.5-pro")
	vpr.SetDefault("NESSIE_BASE_URL", "http://api.nessieisreal.com")

	defaults := models.DefaultWeights()
	vpr.SetDefault("SCOUT_WEIGHT_PRICE", defaults.Price)
	vpr.SetDefault("SCOUT_WEIGHT_TIME", defaults.Time)
	vpr.SetDefault("SCOUT_WEIGHT_RATING", defaults.Rating)

	apiPort := vpr.GetInt("SCOUT_API_PORT")
	if apiPort <= 0 {
		panic("failed to parse port for the ranking API from configuration")
	}

	healthPort := vpr.GetInt("SCOUT_HEALTH_PORT")
	if healthPort <= 0 {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers := vpr.GetInt("SCOUT_FETCH_WORKERS")
	if workers <= 0 {
		panic("failed to parse fetch workers from configuration, must be a positive integer")
	}

	return &Config{
		Env:           vpr.GetString("SCOUT_ENV"),
		APIPort:       apiPort,
		HealthPort:    healthPort,
		MapsAPIKey:    vpr.GetString("GMAPS_API_KEY"),
		GeminiAPIKey:  vpr.GetString("GEMINI_API_KEY"),
		GeminiModel:   vpr.GetString("GEMINI_MODEL"),
		NessieAPIKey:  vpr.GetString("CAPITALONE_KEY"),
		NessieBaseURL: vpr.GetString("NESSIE_BASE_URL"),
		PlaceType:     vpr.GetString("SCOUT_PLACE_TYPE"),
		FetchWorkers:  workers,
		DefaultCenter: models.Coordinates{
			Latitude:  vpr.GetFloat64("SCOUT_DEFAULT_LAT"),
			Longitude: vpr.GetFloat64("SCOUT_DEFAULT_LNG"),
		},
		DefaultWeights: models.Weights{
			Price:  vpr.GetFloat64("SCOUT_WEIGHT_PRICE"),
			Time:   vpr.GetFloat64("SCOUT_WEIGHT_TIME"),
			Rating: vpr.GetFloat64("SCOUT_WEIGHT_RATING"),
		},
	}
}

// Validate checks that every credential required before the first network
// call is present. The merchant identity key is deliberately not required:
// without it, enrichment is skipped rather than the service refusing to start.
func (c *Config) Validate() error {
	if c.MapsAPIKey == "" {
		return fmt.Errorf("invalid configuration: %w", ErrMissingMapsKey)
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("invalid configuration: %w", ErrMissingGeminiKey)
	}
	return nil
}
