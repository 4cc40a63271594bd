// README: Checkout handlers; summary computation and the booking submission.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keepify/internal/backend"
	"keepify/internal/http/middleware"
	"keepify/internal/metrics"
	"keepify/internal/modules/checkout"
	"keepify/internal/modules/draft"
	"keepify/internal/modules/session"
	"keepify/internal/types"
)

type CheckoutHandler struct {
	backend  *backend.Client
	sessions *session.Manager
	pipeline *checkout.Pipeline
	metrics  *metrics.Collector
}

func NewCheckoutHandler(b *backend.Client, sessions *session.Manager, pipeline *checkout.Pipeline, m *metrics.Collector) *CheckoutHandler {
	return &CheckoutHandler{backend: b, sessions: sessions, pipeline: pipeline, metrics: m}
}

// restore rehydrates the draft from its mirror and writes it back into the
// session, covering the state loss across the login redirect.
func (h *CheckoutHandler) restore(c *gin.Context, sess *session.Session) draft.Order {
	snap, _ := h.sessions.Snapshot(sess.ID)
	d := h.pipeline.Restore(c.Request.Context(), sess.ID, snap.Draft)
	if d != snap.Draft {
		d, _ = h.sessions.DispatchDraft(sess.ID, func(draft.Order) draft.Order { return d })
	}
	return d
}

// Summary prices the draft against the dropzone rate:
// rate x items x inclusive day count.
func (h *CheckoutHandler) Summary(c *gin.Context) {
	dzID := c.Query("dropzone_id")
	if dzID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dropzone_id is required"})
		return
	}
	sess := middleware.CallerSession(c)
	d := h.restore(c, sess)
	if !checkout.Bookable(d) {
		respondError(c, checkout.ErrIncompleteDraft)
		return
	}
	dz, err := h.backend.GetDropzone(c.Request.Context(), types.ID(dzID))
	if err != nil {
		respondError(c, err)
		return
	}
	days := checkout.InclusiveDays(*d.StartTime, *d.EndTime)
	total := checkout.TotalCost(dz.Rate, d.Items, *d.StartTime, *d.EndTime)
	c.JSON(http.StatusOK, gin.H{"draft": d, "days": days, "total": total})
}

type submitReq struct {
	DropzoneID string            `json:"dropzone_id"`
	Note       string            `json:"client_note"`
	Card       checkout.CardForm `json:"card"`
}

func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil || req.DropzoneID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dropzone_id is required"})
		return
	}
	sess := middleware.CallerSession(c)
	d := h.restore(c, sess)

	snap, _ := h.sessions.Snapshot(sess.ID)
	gw := h.backend.WithToken(snap.Token)
	txID, err := h.pipeline.Submit(c.Request.Context(), sess.ID, gw, d, types.ID(req.DropzoneID), req.Note, req.Card)
	if h.metrics != nil {
		h.metrics.RecordCheckout(err == nil)
	}
	if err != nil {
		// Draft stays put so the user can retry after a decline.
		respondError(c, err)
		return
	}
	h.sessions.DispatchDraft(sess.ID, draft.Clear)
	c.JSON(http.StatusCreated, gin.H{"transaction_id": txID})
}
