package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dinarex/exchange-backend/controllers"
)

func SetupRoutes(r *gin.Engine, h *controllers.Handler) {
	api := r.Group("/api")

	// ----------------------
	// Public routes
	// ----------------------
	// Current rates and platform receiving addresses; price a trade
	// without creating it.
	api.GET("/settings/payment", h.GetPaymentSettings)
	api.POST("/quote", h.QuotePreview)

	// ----------------------
	// Authenticated routes
	// ----------------------
	auth := api.Group("", h.Authenticate())
	// Submit buy/sell with proof upload
	auth.POST("/trade", h.CreateTrade)
	auth.GET("/transactions", h.ListMyTransactions)
	auth.GET("/me", h.Me)
	auth.PATCH("/me/payment-details", h.UpdatePaymentDetails)
	// ?unread=1 for polling
	auth.GET("/notifications", h.ListNotifications)
	// ?id= to mark a single one, otherwise all
	auth.POST("/notifications/read", h.MarkNotificationsRead)

	// ----------------------
	// Admin routes
	// ----------------------
	admin := api.Group("/admin", h.Authenticate(), h.RequireAdmin())
	// Pending orders surface first
	admin.GET("/transactions", h.AdminListTransactions)
	admin.POST("/transactions/:id/approve", h.ApproveTransaction)
	admin.GET("/payment-proof/:reference", h.GetPaymentProof)
	// Full replacement, never a partial patch
	admin.POST("/settings/payment", h.UpdatePaymentSettings)
}
