package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sylar-lab/sharks-backend-go/internal/config"
	"github.com/sylar-lab/sharks-backend-go/internal/handler"
	"github.com/sylar-lab/sharks-backend-go/internal/middleware"
	"github.com/sylar-lab/sharks-backend-go/internal/service"
	"github.com/sylar-lab/sharks-backend-go/internal/session"
)

// SetupRouter wires the HTTP surface of the dashboard backend
func SetupRouter(cfg *config.Config, manager *session.Manager, mapService *service.MapService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS for the browser-hosted map client
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Sharks Foraging Prediction API is running",
			"sessions": manager.Count(),
		})
	})

	secret := []byte(cfg.JWTSecret)
	sessionHandler := handler.NewSessionHandler(manager, secret, cfg.SessionTTL)
	mapHandler := handler.NewMapHandler(mapService)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		api.POST("/sessions", sessionHandler.Create)

		maps := api.Group("/map")
		maps.Use(middleware.SessionAuth(secret, manager))
		{
			maps.POST("/refresh", mapHandler.Refresh)
			maps.GET("/overlay", mapHandler.GetOverlay)
			maps.GET("/overlay/stats", mapHandler.GetOverlayStats)
			maps.GET("/markers", mapHandler.GetMarkers)
			maps.GET("/productivity", mapHandler.GetProductivity)
		}
	}

	return r
}
