package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"parking-maintenance-backend/config"
	"parking-maintenance-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg config.ServerConfig, handler *Handler) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)
	// A new report changes the listing.
	handler.reports.OnPublish(func(string) { cacheStore.Flush() })

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/reports", caching, handler.ListReports)
		api.GET("/reports/:name", handler.GetReport)
		api.POST("/reports/monthly", handler.GenerateMonthlyReport)
		api.POST("/reports/snapshot", handler.GenerateSnapshotReport)

		api.POST("/reservations", handler.CreateReservation)

		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
