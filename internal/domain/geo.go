package domain

// GeoPoint is a GeoJSON Point. Coordinates are ordered [longitude, latitude]
// to match the geospatial index convention of the storage layer.
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// NewGeoPoint builds a Point from a longitude/latitude pair.
func NewGeoPoint(lon, lat float64) *GeoPoint {
	return &GeoPoint{
		Type:        "Point",
		Coordinates: []float64{lon, lat},
	}
}

// IsValid reports whether the point has the Point type tag and an in-range
// [longitude, latitude] pair.
func (p *GeoPoint) IsValid() bool {
	if p == nil || p.Type != "Point" || len(p.Coordinates) != 2 {
		return false
	}
	lon, lat := p.Coordinates[0], p.Coordinates[1]
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// GeocodeCandidate is one forward-geocoding result for an address query.
type GeocodeCandidate struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	PlaceName string  `json:"place_name,omitempty"`
	Relevance float64 `json:"relevance,omitempty"`
}
