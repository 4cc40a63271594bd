// README: Draft order handlers; reducers plus the persistent mirror.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"keepify/internal/http/middleware"
	"keepify/internal/modules/draft"
	"keepify/internal/modules/session"
)

type DraftHandler struct {
	sessions *session.Manager
	drafts   draft.Repository
}

func NewDraftHandler(sessions *session.Manager, drafts draft.Repository) *DraftHandler {
	return &DraftHandler{sessions: sessions, drafts: drafts}
}

func (h *DraftHandler) Get(c *gin.Context) {
	sess := middleware.CallerSession(c)
	snap, _ := h.sessions.Snapshot(sess.ID)
	c.JSON(http.StatusOK, gin.H{"draft": snap.Draft})
}

type draftReq struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Items     *int       `json:"items"`
}

// Set overwrites the provided fields. Items is deliberately unclamped here:
// the set path mirrors restored session data verbatim, only the +/- steps
// enforce the 1..10 band.
func (h *DraftHandler) Set(c *gin.Context) {
	var req draftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sess := middleware.CallerSession(c)
	d, _ := h.sessions.DispatchDraft(sess.ID, func(o draft.Order) draft.Order {
		if req.StartTime != nil {
			o = draft.SetStartTime(o, *req.StartTime)
		}
		if req.EndTime != nil {
			o = draft.SetEndTime(o, *req.EndTime)
		}
		if req.Items != nil {
			o = draft.SetItems(o, *req.Items)
		}
		return o
	})
	if err := h.drafts.Save(c.Request.Context(), sess.ID, d); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d})
}

func (h *DraftHandler) AddItem(c *gin.Context) {
	sess := middleware.CallerSession(c)
	d, _ := h.sessions.DispatchDraft(sess.ID, draft.AddItem)
	if err := h.drafts.Save(c.Request.Context(), sess.ID, d); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d})
}

// MinusItem applies the page-level guard atomically with the decrement: the
// count never drops below one from here, even though the store itself floors
// at zero.
func (h *DraftHandler) MinusItem(c *gin.Context) {
	sess := middleware.CallerSession(c)
	d, _ := h.sessions.DispatchDraft(sess.ID, func(o draft.Order) draft.Order {
		if o.Items <= 1 {
			return o
		}
		return draft.MinusItem(o)
	})
	if err := h.drafts.Save(c.Request.Context(), sess.ID, d); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d})
}

func (h *DraftHandler) Clear(c *gin.Context) {
	sess := middleware.CallerSession(c)
	d, _ := h.sessions.DispatchDraft(sess.ID, draft.Clear)
	if err := h.drafts.Delete(c.Request.Context(), sess.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d})
}
