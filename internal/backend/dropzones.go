// README: Dropzone endpoints of the backend API.
package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"keepify/internal/modules/dropzone"
	"keepify/internal/types"
)

func (c *Client) ListDropzones(ctx context.Context, at types.Point) ([]dropzone.Dropzone, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(at.Lng, 'f', -1, 64))
	var out struct {
		Dropzones []dropzone.Dropzone `json:"dropzones"`
	}
	if err := c.do(ctx, http.MethodGet, "/dropzones", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Dropzones, nil
}

func (c *Client) GetDropzone(ctx context.Context, id types.ID) (*dropzone.Dropzone, error) {
	var out struct {
		Dropzone dropzone.Dropzone `json:"dropzone"`
	}
	if err := c.do(ctx, http.MethodGet, "/dropzones/"+string(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Dropzone, nil
}

func (c *Client) ToggleDropzoneActive(ctx context.Context, id types.ID, active bool) (*dropzone.Dropzone, error) {
	body := map[string]bool{"active": active}
	var out struct {
		Dropzone dropzone.Dropzone `json:"dropzone"`
	}
	if err := c.do(ctx, http.MethodPatch, "/dropzones/"+string(id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Dropzone, nil
}
