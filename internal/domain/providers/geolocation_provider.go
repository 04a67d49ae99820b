package providers

import (
	"context"
)

// GeolocationProvider defines the interface for geocoding services,
// used to place DJ profiles on the map from their city/state fields
type GeolocationProvider interface {
	// Geocode converts an address or city name to coordinates
	Geocode(ctx context.Context, address string) (*Coordinates, error)

	// CalculateDistance calculates the distance between two points in kilometers
	CalculateDistance(ctx context.Context, from, to Coordinates) (float64, error)
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64
	Longitude float64
}
