// README: Dropzone listing record; read-only from this tier, owned by the backend.
package dropzone

import (
	"keepify/internal/modules/user"
	"keepify/internal/types"
)

type Dropzone struct {
	ID           types.ID    `json:"id"`
	Name         string      `json:"name"`
	Location     types.Point `json:"location"`
	LocationName string      `json:"location_name"`
	Host         user.User   `json:"host"`
	PhotoURLs    []string    `json:"photo_urls"`
	Rate         types.Money `json:"rate"`
	Rating       float64     `json:"rating"`
	Active       bool        `json:"active"`
}
