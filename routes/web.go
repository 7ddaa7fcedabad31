package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/election-directory/app/config"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	// Web routes group
	web := router.Group("/")
	{
		// Home page
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Election Directory Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		// API documentation
		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Election Directory API v1",
				"endpoints": map[string]string{
					"candidates":     "GET /v1/elections/:cycle/candidates?q=&locality=&constituency=&sort=",
					"candidate":      "GET /v1/elections/:cycle/candidates/:entryID",
					"facets":         "GET /v1/elections/:cycle/facets?locality=",
					"constituencies": "GET /v1/elections/:cycle/constituencies",
					"constituency":   "GET /v1/elections/:cycle/constituencies/:id",
					"overview":       "GET /v1/elections/:cycle/overview",
					"documents":      "GET /v1/elections/:cycle/documents?q=",
					"suggest":        "GET /v1/elections/:cycle/suggest?q=",
					"health":         "GET /v1/health",
				},
			})
		})

		// Status page
		web.GET("/status", func(c *gin.Context) {
			cycles := make([]string, 0, len(config.C.Cycles))
			for _, cy := range config.C.Cycles {
				cycles = append(cycles, cy.ID)
			}
			c.JSON(200, gin.H{
				"status":  "running",
				"service": "Election Directory",
				"cycles":  cycles,
			})
		})
	}
}
