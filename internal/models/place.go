package models

// PlaceRecord is a raw entity returned by the nearby place lookup service.
// Identity is PlaceID: two records sharing a non-empty PlaceID describe the
// same place regardless of attribute differences. Records with an empty
// PlaceID have no identity and are never deduplicated against anything.
type PlaceRecord struct {
	PlaceID    string      `json:"place_id"`
	Name       string      `json:"name"`
	Vicinity   string      `json:"vicinity"`
	Location   Coordinates `json:"location"`
	Rating     float64     `json:"rating,omitempty"`      // 0-5 user rating, 0 when unrated.
	PriceLevel int         `json:"price_level,omitempty"` // 0-4 Google price level, 0 when unknown.
}
