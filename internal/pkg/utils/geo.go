package utils

// ValidateCoordinates checks latitude/longitude ranges.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// BuildAddressLine joins structured address parts into the single-line
// form submitted to the geocoder: street, city, state, postal code, country.
func BuildAddressLine(street, city, state, postalCode, country string) string {
	return street + ", " + city + ", " + state + ", " + postalCode + ", " + country
}
