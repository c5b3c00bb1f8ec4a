package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wishu/scraper/api/handler"
	"github.com/wishu/scraper/api/middleware"
	"github.com/wishu/scraper/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → CORS
//	Scrape:  Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(sc handler.Scraper, renderEnabled bool, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.CORS())

	// Non-POST on /scrape must answer 405, not 404.
	r.HandleMethodNotAllowed = true

	r.GET("/health", handler.Health(renderEnabled, startTime))

	protected := r.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/scrape", handler.Scrape(sc))

	return r
}
