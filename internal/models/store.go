package models

// StoreCandidate is a store the recommendation step identified as relevant,
// carrying the raw scoring signals and the scores computed from them. Raw
// signals and computed scores are pointers so "not yet populated" is
// distinguishable from a legitimate zero.
type StoreCandidate struct {
	Name              string   `json:"name"`
	PlaceID           string   `json:"place_id,omitempty"`
	Vicinity          string   `json:"vicinity,omitempty"`
	Items             []string `json:"items,omitempty"` // Items the store covers from the user query.
	EstimatedPrice    *float64 `json:"estimated_price,omitempty"`
	TravelTimeMinutes *float64 `json:"travel_time_minutes,omitempty"`
	Rating            *float64 `json:"rating,omitempty"`
	PriceScore        *float64 `json:"normalized_price_score,omitempty"`
	TimeScore         *float64 `json:"normalized_time_score,omitempty"`
	RatingScore       *float64 `json:"normalized_rating_score,omitempty"`
	FinalScore        float64  `json:"final_weighted_score"`
	MerchantID        string   `json:"merchant_id,omitempty"`
}

// RankedResult is the outcome of one aggregation-and-ranking run.
type RankedResult struct {
	Stores          []StoreCandidate `json:"stores"`           // Stores sorted by FinalScore, descending.
	ItemsToBuy      []string         `json:"items_to_buy"`     // Flat list of items covered across stores.
	StorePlan       []string         `json:"store_plan"`       // Minimal store visit order covering ItemsToBuy.
	TotalCandidates int              `json:"total_candidates"` // Distinct places seen before recommendation.
}

// Float64 returns a pointer to v. Helper for populating optional fields.
func Float64(v float64) *float64 {
	return &v
}
