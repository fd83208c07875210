package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"escibridge/internal/handler"
	"escibridge/internal/middleware"
	"escibridge/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger zerolog.Logger,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	invoiceH *handler.InvoiceHandler,
	deliveryH *handler.DeliveryHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/token", authH.Token)

	// Protected routes - require valid supplier token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.POST("/invoices", invoiceH.Submit)

	deliveries := protected.Group("/deliveries")
	deliveries.GET("", deliveryH.List)
	deliveries.GET("/export", deliveryH.Export)
	deliveries.GET("/:id", deliveryH.GetByID)

	return r
}
