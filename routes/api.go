package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/election-directory/app/controllers"
	"github.com/election-directory/internal/metrics"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, directoryController *controllers.DirectoryController, detailController *controllers.DetailController, adminController *controllers.AdminController) {
	// API v1 group
	v1 := router.Group("/v1")
	{
		// Per-cycle directory routes
		elections := v1.Group("/elections/:cycle")
		{
			elections.GET("/candidates", directoryController.ListCandidates)
			elections.GET("/candidates/:entryID", detailController.GetCandidate)
			elections.GET("/facets", directoryController.GetFacets)
			elections.GET("/constituencies", directoryController.ListConstituencies)
			elections.GET("/constituencies/:id", directoryController.GetConstituency)
			elections.GET("/overview", directoryController.GetOverview)
			elections.GET("/documents", directoryController.ListDocuments)
			elections.GET("/suggest", directoryController.Suggest)
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
			admin.POST("/search/seed", adminController.SeedSearch)
			admin.GET("/stats", adminController.GetStats)
		}

		// Health check route
		v1.GET("/health", directoryController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, directoryController *controllers.DirectoryController) {
	// Root health check
	router.GET("/health", directoryController.HealthCheck)

	// Readiness check
	router.GET("/ready", directoryController.HealthCheck)

	// Liveness check
	router.GET("/live", directoryController.HealthCheck)
}

// SetupMetricsRoutes thiết lập metrics routes (cho Prometheus)
func SetupMetricsRoutes(router *gin.Engine, m *metrics.Metrics) {
	router.GET("/metrics", m.Handler())
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, m *metrics.Metrics, directoryController *controllers.DirectoryController, detailController *controllers.DetailController, adminController *controllers.AdminController) {
	// Thiết lập middleware
	setupMiddleware(router, m)

	// Thiết lập các loại routes
	SetupWebRoutes(router)
	SetupHealthRoutes(router, directoryController)
	SetupAPIRoutes(router, directoryController, detailController, adminController)
	SetupMetricsRoutes(router, m)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware thiết lập middleware cho router
func setupMiddleware(router *gin.Engine, m *metrics.Metrics) {
	// Recovery middleware
	router.Use(gin.Recovery())

	// Logger middleware
	router.Use(gin.Logger())

	// Request ID middleware
	router.Use(requestID())

	// Prometheus middleware
	router.Use(m.Middleware())
}

// requestID gắn một request id vào mỗi request, echo lại trong header.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
