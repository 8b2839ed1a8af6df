package main

import (
	"loadboard/internal/httpapi"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	// Liveness stays unauthenticated.
	r.GET("/health", h.Health)

	protected := r.Group("/")
	protected.Use(authMW)
	{
		protected.POST("/auth/token", h.IssueToken)

		shipments := protected.Group("/shipments")
		{
			shipments.POST("", h.CreateShipment)
			shipments.GET("", h.ListShipments)
			shipments.GET("/stats", h.GetShipmentStats)
			shipments.GET("/random", h.GetRandomShipment)

			shipments.GET("/:id", h.GetShipment)
			shipments.PATCH("/:id", h.UpdateShipment)
			shipments.PATCH("/:id/manual", h.UpdateShipmentManual)
			shipments.DELETE("/:id", h.DeleteShipment)

			shipments.POST("/:id/phone-calls", h.CreatePhoneCall)
			shipments.GET("/:id/phone-calls", h.ListShipmentPhoneCalls)
			shipments.DELETE("/:id/phone-calls", h.DeleteShipmentPhoneCalls)
		}

		protected.GET("/phone-calls", h.ListPhoneCalls)
		protected.GET("/audit/events", h.ListAuditEvents)
	}
}
