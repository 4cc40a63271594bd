// README: Dropzone browsing and host-toggle handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"keepify/internal/backend"
	"keepify/internal/http/middleware"
	"keepify/internal/modules/dropzone"
	"keepify/internal/modules/session"
	"keepify/internal/modules/user"
	"keepify/internal/types"
)

type DropzoneHandler struct {
	backend  *backend.Client
	sessions *session.Manager
	geo      dropzone.Geocoder
}

func NewDropzoneHandler(b *backend.Client, sessions *session.Manager, geo dropzone.Geocoder) *DropzoneHandler {
	return &DropzoneHandler{backend: b, sessions: sessions, geo: geo}
}

// List serves both viewport queries (lat/lng) and the search box (q).
func (h *DropzoneHandler) List(c *gin.Context) {
	svc := dropzone.NewService(h.backend, h.geo)

	if q := c.Query("q"); q != "" {
		zones, err := svc.Search(c.Request.Context(), q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"dropzones": zones})
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}
	zones, err := svc.Near(c.Request.Context(), types.Point{Lat: lat, Lng: lng})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dropzones": zones})
}

func (h *DropzoneHandler) Get(c *gin.Context) {
	svc := dropzone.NewService(h.backend, h.geo)
	dz, err := svc.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dropzone": dz})
}

type toggleReq struct {
	Active bool `json:"active"`
}

// Toggle flips the listing's active flag; only its host gets past the local
// guard, and the backend authorizes again on its side.
func (h *DropzoneHandler) Toggle(c *gin.Context) {
	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sess := middleware.CallerSession(c)
	snap, _ := h.sessions.Snapshot(sess.ID)
	svc := dropzone.NewService(h.backend.WithToken(snap.Token), h.geo)

	dz, err := svc.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	viewer := &user.User{ID: types.ID(middleware.CallerUID(c))}
	updated, err := svc.ToggleActive(c.Request.Context(), viewer, dz, req.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dropzone": updated})
}
