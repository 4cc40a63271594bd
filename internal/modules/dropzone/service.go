// README: Dropzone browsing service; viewport listing, geocoded search, and the host-only active toggle.
package dropzone

import (
	"context"
	"errors"

	"keepify/internal/modules/user"
	"keepify/internal/types"
)

var ErrNotHost = errors.New("only the dropzone host may toggle it")

type Gateway interface {
	ListDropzones(ctx context.Context, at types.Point) ([]Dropzone, error)
	GetDropzone(ctx context.Context, id types.ID) (*Dropzone, error)
	ToggleDropzoneActive(ctx context.Context, id types.ID, active bool) (*Dropzone, error)
}

// Geocoder turns a free-text query into coordinates for the search box.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (types.Point, error)
}

type Service struct {
	gw  Gateway
	geo Geocoder
}

func NewService(gw Gateway, geo Geocoder) *Service {
	return &Service{gw: gw, geo: geo}
}

func (s *Service) Near(ctx context.Context, at types.Point) ([]Dropzone, error) {
	return s.gw.ListDropzones(ctx, at)
}

// Search geocodes the query and lists dropzones around the result.
func (s *Service) Search(ctx context.Context, query string) ([]Dropzone, error) {
	at, err := s.geo.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.gw.ListDropzones(ctx, at)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Dropzone, error) {
	return s.gw.GetDropzone(ctx, id)
}

// ToggleActive flips the listing's active flag. The backend authorizes the
// call again; this guard just keeps non-hosts from issuing it at all.
func (s *Service) ToggleActive(ctx context.Context, viewer *user.User, dz *Dropzone, active bool) (*Dropzone, error) {
	if viewer == nil || viewer.ID != dz.Host.ID {
		return nil, ErrNotHost
	}
	return s.gw.ToggleDropzoneActive(ctx, dz.ID, active)
}
