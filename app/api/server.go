package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shojha24/u-c-lotta-adipose/app/metrics"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, version string) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler, version)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, version string) {
	// Dining data endpoints
	r.GET("/halls", handler.GetHalls)
	r.GET("/halls/:id", handler.GetHall)
	r.GET("/halls/:id/hours", handler.GetHallHours)
	r.GET("/halls/:id/menu", handler.GetHallMenu)
	r.GET("/halls/:id/menu/:date", handler.GetHallMenuByDate)
	r.GET("/trucks", handler.GetTrucks)
	r.GET("/items/:id", handler.GetItem)
	r.GET("/search", handler.SearchItems)

	// Live occupancy endpoints
	r.GET("/activity", handler.GetAllActivity)
	r.GET("/activity/:id", handler.GetActivity)

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "UCLA Dining API",
			"version":     version,
			"description": "REST API for UCLA dining hall hours, menus, nutrition, and occupancy",
			"endpoints": map[string]string{
				"halls":        "/halls",
				"hall":         "/halls/<id>",
				"hours":        "/halls/<id>/hours",
				"menu":         "/halls/<id>/menu",
				"menu_by_date": "/halls/<id>/menu/<date>",
				"trucks":       "/trucks",
				"item":         "/items/<id>",
				"search":       "/search?q=<query>",
				"activity":     "/activity",
				"health":       "/health",
				"metrics":      "/metrics",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
