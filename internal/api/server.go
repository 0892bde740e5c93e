package api

import (
	"fmt"
	"log"
	"net/http"

	"eventgrid/internal/cache"
	"eventgrid/internal/checkout"
	"eventgrid/internal/config"
	"eventgrid/internal/external"
	"eventgrid/internal/handlers"
	"eventgrid/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the storefront HTTP server
type Server struct {
	router   *gin.Engine
	config   *config.Config
	valkey   *cache.ValkeyClient
	checkout *checkout.Service
}

// NewServer wires the upstream client, checkout service and routes
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	client := external.NewClient(cfg.Upstream)
	checkoutSvc := checkout.NewService(client, cfg.Checkout)

	// The cache is optional; the storefront runs without it.
	valkeyClient, err := cache.NewValkeyClient()
	if err != nil {
		log.Printf("Valkey unavailable, event listings will not be cached: %v", err)
		valkeyClient = nil
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		valkey:   valkeyClient,
		checkout: checkoutSvc,
	}

	server.setupRoutes(client)

	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes(client *external.Client) {
	h := handlers.NewHandlers(s.checkout, client, s.valkey, s.config.EventCacheTTL)

	api := s.router.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		events := api.Group("/events")
		{
			events.GET("", h.ListEvents)
			events.GET("/:id", h.GetEvent)
			events.PUT("/:id", h.UpdateEvent)
			events.GET("/:id/stats", h.GetEventStats)
			events.GET("/:id/tickets", h.ListTicketTypes)
			events.POST("/:id/tickets", h.CreateTicketType)
			events.PUT("/:id/tickets/:ticketId", h.UpdateTicketType)
			events.DELETE("/:id/tickets/:ticketId", h.DeleteTicketType)
		}

		co := api.Group("/checkout")
		{
			co.POST("", h.Checkout)
			co.GET("/attempts/:paymentId", h.GetAttempt)
			co.DELETE("/attempts/:paymentId", h.CancelAttempt)
		}

		orders := api.Group("/orders")
		{
			orders.GET("/user", h.ListMyOrders)
			orders.GET("/:id", h.GetOrder)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "eventgrid-storefront",
		"version": "1.0.0",
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter returns the router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup stops polling tasks and closes connections
func (s *Server) Cleanup() error {
	s.checkout.Close()

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			log.Printf("Error closing Valkey connection: %v", err)
			return err
		}
	}

	return nil
}
