package middleware

import (
	"os"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the standard protective headers on every response.
// The API only ever serves JSON, so caching is disabled and anything
// browser-facing (framing, CSP, feature access) is locked down.
func SecurityHeaders() gin.HandlerFunc {
	isProduction := os.Getenv("HAVEN_SERVER_ENV") == "production"

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Check-in and crisis data must never land in shared caches.
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")

		// HSTS only makes sense behind TLS, which we only guarantee in production.
		if isProduction {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		c.Next()
	}
}
