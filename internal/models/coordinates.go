package models

// Coordinates represents a geographical point defined by its latitude and longitude.
type Coordinates struct {
	Latitude  float64 `json:"lat"` // Latitude of the geographical point.
	Longitude float64 `json:"lng"` // Longitude of the geographical point.
}

// SamplePoint is one location queried during area aggregation. A search area
// larger than a single nearby-search radius is approximated by querying the
// center plus cardinal offset points, each with its own bounded radius.
type SamplePoint struct {
	Coordinate   Coordinates // Coordinate is the location of this sample point.
	RadiusMeters int         // RadiusMeters is the search radius used at this point.
	Label        string      // Label names the point, e.g. "Center" or "North".
}
