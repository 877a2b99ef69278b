package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets hardening headers on every response. The API serves
// JSON only, so the policy is maximally restrictive: nothing embeds us,
// nothing scripts against us, and responses carrying personal health data
// are never cached. HSTS is limited to production because local development
// runs over plain HTTP.
func SecurityHeaders(env string) gin.HandlerFunc {
	production := env == "production"

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Activity and metric payloads are per-user; keep them out of
		// shared caches and proxies.
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")

		// No HTML is ever served from this process.
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		if production {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
