package middleware

import (
	"patient-kiosk-backend/internal/config"

	"github.com/gin-gonic/gin"
)

// CORS returns a middleware for the kiosk API. The default configuration
// allows any origin (the dashboard and the registration UI are served from
// whatever host the kiosk happens to use); a comma-separated allow-list can
// lock it down.
func CORS(cfg *config.Config) gin.HandlerFunc {
	allowAny := len(cfg.CORS.AllowedOrigins) == 0
	for _, o := range cfg.CORS.AllowedOrigins {
		if o == "*" {
			allowAny = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := allowAny
		if !allowed {
			for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
				if origin == allowedOrigin {
					allowed = true
					break
				}
			}
		}

		if allowed {
			value := origin
			if allowAny {
				value = "*"
			}
			c.Writer.Header().Set("Access-Control-Allow-Origin", value)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		}

		// Handle preflight OPTIONS request
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
