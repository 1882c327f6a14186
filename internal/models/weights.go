package models

// Weights holds the per-signal multipliers for the final weighted score.
// The sum should be 1.0 but is not enforced: a mismatched sum is a warning,
// and scores are computed with the weights exactly as given.
type Weights struct {
	Price  float64 `json:"price"`
	Time   float64 `json:"time"`
	Rating float64 `json:"rating"`
}

// Sum returns the total of all three weights.
func (w Weights) Sum() float64 {
	return w.Price + w.Time + w.Rating
}

// DefaultWeights returns the weights used when the caller supplies none.
func DefaultWeights() Weights {
	return Weights{Price: 0.3, Time: 0.4, Rating: 0.3}
}
