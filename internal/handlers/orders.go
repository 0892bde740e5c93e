package handlers

import (
	"net/http"

	"eventgrid/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ListMyOrders - GET /api/orders/user
// Order history of the authenticated user.
func (h *Handlers) ListMyOrders(c *gin.Context) {
	result, err := h.client.ListUserOrders(c.Request.Context(), middleware.Token(c))
	if err != nil {
		writeProxied(c, 0, nil, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetOrder - GET /api/orders/:id
// Single order, forwarded verbatim. The confirmation page re-fetches this
// rather than mutating any local copy.
func (h *Handlers) GetOrder(c *gin.Context) {
	payload, err := h.client.GetOrder(c.Request.Context(), middleware.Token(c), c.Param("id"))
	writeProxied(c, http.StatusOK, payload, err)
}
