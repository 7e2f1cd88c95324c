package middlewares

import (
	"log"
	"net/http"

	"github.com/KanayaActa/IceBreaker/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// ResultRateLimiter limits how often one client can post match results.
// Without a configured Redis backend it passes everything through; on
// Redis errors it fails open.
func ResultRateLimiter() gin.HandlerFunc {
	cfg := ratelimit.DefaultConfig()

	return func(c *gin.Context) {
		if !ratelimit.Enabled() {
			c.Next()
			return
		}

		key := "rate:result:" + c.ClientIP()
		ok, err := ratelimit.Allow(c.Request.Context(), key, cfg)
		if err != nil {
			log.Printf("Rate limit check failed: %v", err)
			c.Next()
			return
		}
		if !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many results, slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}
