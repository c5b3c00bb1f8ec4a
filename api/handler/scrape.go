package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wishu/scraper/models"
)

// Scraper runs the tiered acquisition pipeline for one product URL.
type Scraper interface {
	Scrape(ctx context.Context, rawURL string) *models.Result
}

// Scrape returns a handler for POST /scrape.
//
// The response status is 200 for both successful extraction and graceful
// pipeline failure; the client distinguishes the two by the errorCode field.
// Only a request without a URL gets a 400.
func Scrape(sc Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"title":       "",
				"description": "",
				"image":       "",
				"error":       "No URL",
			})
			return
		}

		url := req.TargetURL()
		if url == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"title":       "",
				"description": "",
				"image":       "",
				"error":       "No URL",
			})
			return
		}

		// The render tier can take close to a minute; a dropped browser
		// connection must not cancel it mid-flight, so the pipeline runs
		// detached from the request context.
		result := sc.Scrape(context.Background(), url)

		slog.Info("scrape handled",
			"url", url,
			"tier", result.TierUsed,
			"errorCode", result.ErrorCode,
			"durationMs", time.Since(start).Milliseconds(),
		)

		c.JSON(http.StatusOK, result)
	}
}
