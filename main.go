package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dinarex/exchange-backend/config"
	"github.com/dinarex/exchange-backend/controllers"
	"github.com/dinarex/exchange-backend/routes"
	"github.com/dinarex/exchange-backend/utils/logger"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(h *controllers.Handler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup REST routes
	routes.SetupRoutes(r, h)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket notification endpoint
	r.GET("/ws", h.Authenticate(), h.Notifications)

	return r
}

func main() {
	cfg := config.Load()

	db := config.SetupDatabase(cfg.DatabaseURL)

	h := controllers.New(db, cfg.UploadDir)
	router := setupRouter(h)

	logger.Infof("exchange backend starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
