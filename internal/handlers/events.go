package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"eventgrid/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Events handlers

// ListEvents - GET /api/events
// Event browsing with filters forwarded upstream. Anonymous listings are
// served through a short-TTL cache.
func (h *Handlers) ListEvents(c *gin.Context) {
	rawQuery := c.Request.URL.RawQuery
	shouldCache := h.shouldCacheEventsRequest(rawQuery)

	if shouldCache && h.valkeyClient != nil {
		rawJSON, err := h.valkeyClient.GetEventsListRaw(c.Request.Context(), rawQuery)
		if err == nil {
			slog.Debug("Cache hit for events list", "query", rawQuery)
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
		slog.Debug("Cache miss for events list", "query", rawQuery)
	}

	payload, err := h.client.ListEvents(c.Request.Context(), middleware.Token(c), rawQuery)
	if err != nil {
		writeProxied(c, 0, nil, err)
		return
	}

	if shouldCache && h.valkeyClient != nil {
		if err := h.valkeyClient.SetEventsList(c.Request.Context(), rawQuery, payload, h.eventCacheTTL); err != nil {
			slog.Warn("Failed to cache events list", "error", err)
		}
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// shouldCacheEventsRequest reports whether a listing may be cached.
// Organizer-scoped listings are per-user and must not be shared.
func (h *Handlers) shouldCacheEventsRequest(rawQuery string) bool {
	return !strings.Contains(rawQuery, "mine=")
}

// GetEvent - GET /api/events/:id
func (h *Handlers) GetEvent(c *gin.Context) {
	payload, err := h.client.GetEvent(c.Request.Context(), middleware.Token(c), c.Param("id"))
	writeProxied(c, http.StatusOK, payload, err)
}

// UpdateEvent - PUT /api/events/:id
func (h *Handlers) UpdateEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	payload, err := h.client.UpdateEvent(c.Request.Context(), middleware.Token(c), c.Param("id"), body)
	writeProxied(c, http.StatusOK, payload, err)
}

// GetEventStats - GET /api/events/:id/stats
// Creator dashboard sales summary.
func (h *Handlers) GetEventStats(c *gin.Context) {
	payload, err := h.client.GetEventStats(c.Request.Context(), middleware.Token(c), c.Param("id"))
	writeProxied(c, http.StatusOK, payload, err)
}

// Ticket type handlers

// ListTicketTypes - GET /api/events/:id/tickets
func (h *Handlers) ListTicketTypes(c *gin.Context) {
	payload, err := h.client.ListTicketTypes(c.Request.Context(), middleware.Token(c), c.Param("id"))
	writeProxied(c, http.StatusOK, payload, err)
}

// CreateTicketType - POST /api/events/:id/tickets
func (h *Handlers) CreateTicketType(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	payload, err := h.client.CreateTicketType(c.Request.Context(), middleware.Token(c), c.Param("id"), body)
	writeProxied(c, http.StatusCreated, payload, err)
}

// UpdateTicketType - PUT /api/events/:id/tickets/:ticketId
func (h *Handlers) UpdateTicketType(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	payload, err := h.client.UpdateTicketType(c.Request.Context(), middleware.Token(c), c.Param("id"), c.Param("ticketId"), body)
	writeProxied(c, http.StatusOK, payload, err)
}

// DeleteTicketType - DELETE /api/events/:id/tickets/:ticketId
func (h *Handlers) DeleteTicketType(c *gin.Context) {
	payload, err := h.client.DeleteTicketType(c.Request.Context(), middleware.Token(c), c.Param("id"), c.Param("ticketId"))
	writeProxied(c, http.StatusOK, payload, err)
}
