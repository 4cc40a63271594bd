// README: Google Maps geocoder used by the dropzone search box.
package geo

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"keepify/internal/types"
)

var ErrNoResults = errors.New("no geocoding results")

type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

// Geocode resolves a free-text place query to its first candidate location.
func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (types.Point, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return types.Point{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, ErrNoResults
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
