package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventgrid/internal/cache"
	"eventgrid/internal/checkout"
	"eventgrid/internal/external"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	svc           *checkout.Service
	client        *external.Client
	valkeyClient  *cache.ValkeyClient
	eventCacheTTL time.Duration
}

func NewHandlers(svc *checkout.Service, client *external.Client, valkeyClient *cache.ValkeyClient, eventCacheTTL time.Duration) *Handlers {
	return &Handlers{
		svc:           svc,
		client:        client,
		valkeyClient:  valkeyClient,
		eventCacheTTL: eventCacheTTL,
	}
}

// writeCheckoutError maps the checkout error taxonomy onto HTTP
// responses. Validation errors and upstream rejections surface their
// message; transport and server faults get generic retryable messages.
func writeCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidItem),
		errors.Is(err, checkout.ErrMixedEvents),
		errors.Is(err, checkout.ErrInvalidPhone):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rejected *checkout.RejectedError
	if errors.As(err, &rejected) {
		status := rejected.StatusCode
		if status < 400 || status >= 500 {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": rejected.Error()})
		return
	}

	if errors.Is(err, checkout.ErrServiceUnavailable) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Ticketing service is temporarily unavailable, please try again"})
		return
	}

	if errors.Is(err, checkout.ErrMalformedResponse) {
		slog.Error("Malformed upstream response", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Invalid response from ticketing service"})
		return
	}

	slog.Error("Upstream request failed", "error", err)
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not reach the ticketing service, please try again"})
}

// writeProxied forwards a raw upstream response, translating upstream
// errors into client responses.
func writeProxied(c *gin.Context, status int, payload json.RawMessage, err error) {
	if err != nil {
		var se *external.StatusError
		if errors.As(err, &se) {
			msg := se.Message
			if msg == "" {
				msg = "Request rejected by ticketing service"
			}
			c.JSON(se.StatusCode, gin.H{"error": msg})
			return
		}
		slog.Error("Upstream request failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not reach the ticketing service, please try again"})
		return
	}

	c.Data(status, "application/json", payload)
}
