// README: Order lifecycle handlers; detail, advance, redeem, and review.
package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"keepify/internal/backend"
	"keepify/internal/http/middleware"
	"keepify/internal/metrics"
	"keepify/internal/modules/order"
	"keepify/internal/modules/session"
	"keepify/internal/modules/user"
	"keepify/internal/types"
)

type OrderHandler struct {
	backend  *backend.Client
	sessions *session.Manager
	metrics  *metrics.Collector
	webBase  string

	mu       sync.Mutex
	inflight map[string]bool
}

func NewOrderHandler(b *backend.Client, sessions *session.Manager, m *metrics.Collector, webBase string) *OrderHandler {
	return &OrderHandler{backend: b, sessions: sessions, metrics: m, webBase: webBase, inflight: make(map[string]bool)}
}

func (h *OrderHandler) gateway(c *gin.Context) *backend.Client {
	sess := middleware.CallerSession(c)
	snap, _ := h.sessions.Snapshot(sess.ID)
	return h.backend.WithToken(snap.Token)
}

// acquire holds one mutation slot per (session, order). A second advance,
// redeem, or review from the same session is refused until the first clears,
// matching the controller's attempt suppression across requests.
func (h *OrderHandler) acquire(c *gin.Context, id types.ID) (string, bool) {
	key := middleware.CallerSession(c).ID + "/" + string(id)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inflight[key] {
		return "", false
	}
	h.inflight[key] = true
	return key, true
}

func (h *OrderHandler) release(key string) {
	h.mu.Lock()
	delete(h.inflight, key)
	h.mu.Unlock()
}

func (h *OrderHandler) List(c *gin.Context) {
	txs, err := h.gateway(c).ListTransactions(c.Request.Context(), order.Status(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// Get returns the transaction with the viewer's resolved role. While the
// order is RECEIVED the host also gets the scannable redemption payload; the
// host token never leaves towards a client viewer.
func (h *OrderHandler) Get(c *gin.Context) {
	tx, err := h.gateway(c).GetTransaction(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	viewerID := types.ID(middleware.CallerUID(c))
	role := order.RoleFor(viewerID, tx)

	resp := gin.H{"role": role}
	if role == user.RoleHost && tx.Status == order.StatusReceived {
		resp["redeem_url"] = order.RedeemURL(h.webBase, tx.ID, tx.HostToken)
	}
	if role != user.RoleHost {
		tx.HostToken = ""
	}
	resp["transaction"] = tx
	c.JSON(http.StatusOK, resp)
}

// Advance moves the order one step along PAID -> CONFIRMED -> RECEIVED. The
// controller consults the transition table first, so a client viewer never
// causes a backend call.
func (h *OrderHandler) Advance(c *gin.Context) {
	id := types.ID(c.Param("id"))
	key, ok := h.acquire(c, id)
	if !ok {
		respondError(c, order.ErrBusy)
		return
	}
	defer h.release(key)

	gw := h.gateway(c)
	tx, err := gw.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ctrl := order.NewController(gw, *tx, types.ID(middleware.CallerUID(c)))
	next, err := ctrl.Advance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordTransition(string(next))
	}
	c.JSON(http.StatusOK, gin.H{"status": next})
}

type redeemReq struct {
	Token string `json:"token"`
}

// Redeem verifies the presented token once. A consumed token or a foreign
// order reports success=false rather than an error.
func (h *OrderHandler) Redeem(c *gin.Context) {
	var req redeemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	id := types.ID(c.Param("id"))
	key, acquired := h.acquire(c, id)
	if !acquired {
		respondError(c, order.ErrBusy)
		return
	}
	defer h.release(key)

	gw := h.gateway(c)
	tx, err := gw.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ctrl := order.NewController(gw, *tx, types.ID(middleware.CallerUID(c)))
	ok, err := ctrl.Redeem(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "The transaction has either been previously redeemed or you do not own this item.",
		})
		return
	}
	if h.metrics != nil {
		h.metrics.RecordTransition(string(order.StatusRedeemed))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": ctrl.Status()})
}

type reviewReq struct {
	Review string `json:"client_review"`
	Stars  int    `json:"client_stars"`
}

func (h *OrderHandler) Review(c *gin.Context) {
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	id := types.ID(c.Param("id"))
	key, acquired := h.acquire(c, id)
	if !acquired {
		respondError(c, order.ErrBusy)
		return
	}
	defer h.release(key)

	gw := h.gateway(c)
	tx, err := gw.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ctrl := order.NewController(gw, *tx, types.ID(middleware.CallerUID(c)))
	if err := ctrl.SubmitReview(c.Request.Context(), req.Review, req.Stars); err != nil {
		respondError(c, err)
		return
	}
	updated := ctrl.Transaction()
	c.JSON(http.StatusOK, gin.H{"transaction": updated})
}
