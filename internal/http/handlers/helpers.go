// README: JSON error mapping shared by the handlers.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"keepify/internal/backend"
	"keepify/internal/modules/checkout"
	"keepify/internal/modules/draft"
	"keepify/internal/modules/dropzone"
	"keepify/internal/modules/order"
)

// respondError surfaces one error payload per failure (the toast of the
// original). Backend errors pass through with their status and message
// untouched; everything else maps by sentinel.
func respondError(c *gin.Context, err error) {
	var be *backend.Error
	if errors.As(err, &be) {
		c.JSON(be.StatusCode, gin.H{"error": be.Message})
		return
	}
	switch {
	case errors.Is(err, order.ErrForbidden), errors.Is(err, dropzone.ErrNotHost):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrBusy), errors.Is(err, checkout.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrNoTransition),
		errors.Is(err, order.ErrNotRedeemed),
		errors.Is(err, order.ErrReviewed),
		errors.Is(err, order.ErrInvalidReview),
		errors.Is(err, order.ErrMissingToken),
		errors.Is(err, checkout.ErrIncompleteDraft),
		errors.Is(err, checkout.ErrIncompleteCard):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, draft.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
