package handlers

import (
	"net/http"

	"eventgrid/internal/middleware"
	"eventgrid/internal/models"

	"github.com/gin-gonic/gin"
)

// Checkout - POST /api/checkout
// One entry point for both checkout modes. Free registrations submit the
// order directly; mobile-money checkouts initiate a payment and start a
// status polling task.
func (h *Handlers) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token := middleware.Token(c)

	switch req.Mode {
	case models.ModeFree:
		order, err := h.svc.SubmitOrder(c.Request.Context(), token, req.Items)
		if err != nil {
			writeCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.CheckoutResponse{Order: order})

	case models.ModeMobileMoney:
		attempt, err := h.svc.InitiatePayment(c.Request.Context(), token, req.Phone, req.Items)
		if err != nil {
			writeCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, models.CheckoutResponse{Attempt: attempt})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be one of: free, mobile_money"})
	}
}

// GetAttempt - GET /api/checkout/attempts/:paymentId
// Read-only snapshot of a payment attempt for the UI to render. The
// polling task is the only writer.
func (h *Handlers) GetAttempt(c *gin.Context) {
	attempt, ok := h.svc.Attempt(c.Param("paymentId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment attempt not found"})
		return
	}

	c.JSON(http.StatusOK, attempt)
}

// CancelAttempt - DELETE /api/checkout/attempts/:paymentId
// Tears the workflow down when the user navigates away. No poll fires
// after this returns.
func (h *Handlers) CancelAttempt(c *gin.Context) {
	if !h.svc.CancelAttempt(c.Param("paymentId")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment attempt not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
