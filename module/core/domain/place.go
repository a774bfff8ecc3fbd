package domain

// Place is a named tour point of interest. Name is the identity key.
// Coordinate is nil until the place has been resolved by the external
// geocoding collaborator; an unresolved place never matches a proximity
// check. RadiusMeters of 0 means the global default threshold applies.
type Place struct {
	Name         string      `json:"name"`
	Coordinate   *Coordinate `json:"coordinate,omitempty"`
	RadiusMeters float64     `json:"radius_meters,omitempty"`
	Description  string      `json:"description,omitempty"`
	MediaURL     string      `json:"media_url,omitempty"`
	SortOrder    int         `json:"sort_order"`
}
