package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wishu/scraper/models"
)

// Health returns a handler for GET /health.
//
// renderEnabled tells operators whether the premium rendering tier has a
// credential; without one, denylisted retailers cannot be served.
func Health(renderEnabled bool, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:        "healthy",
			Uptime:        time.Since(startTime).Round(time.Second).String(),
			Version:       "0.1.0",
			RenderEnabled: renderEnabled,
		})
	}
}
