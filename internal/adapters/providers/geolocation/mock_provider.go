package geolocation

import (
	"context"
	"strings"

	"github.com/dihora04/djbook.in-sub000/internal/domain/providers"
)

// MockGeolocationProvider is a deterministic GeolocationProvider used in
// development and tests. It knows a handful of Indian metros and falls
// back to a fixed point for everything else.
type MockGeolocationProvider struct {
	cities map[string]providers.Coordinates
}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{
		cities: map[string]providers.Coordinates{
			"mumbai":    {Latitude: 19.0760, Longitude: 72.8777},
			"delhi":     {Latitude: 28.7041, Longitude: 77.1025},
			"bangalore": {Latitude: 12.9716, Longitude: 77.5946},
			"goa":       {Latitude: 15.2993, Longitude: 74.1240},
			"pune":      {Latitude: 18.5204, Longitude: 73.8567},
			"hyderabad": {Latitude: 17.3850, Longitude: 78.4867},
		},
	}
}

// Geocode resolves a known city or returns the fallback point
func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	key := strings.ToLower(strings.TrimSpace(address))
	if idx := strings.IndexByte(key, ','); idx >= 0 {
		key = strings.TrimSpace(key[:idx])
	}
	if coords, ok := m.cities[key]; ok {
		c := coords
		return &c, nil
	}
	return &providers.Coordinates{Latitude: 20.5937, Longitude: 78.9629}, nil
}

// CalculateDistance returns the haversine distance in kilometers
func (m *MockGeolocationProvider) CalculateDistance(ctx context.Context, from, to providers.Coordinates) (float64, error) {
	return haversineKm(from, to), nil
}
