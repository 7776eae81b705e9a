package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, PATCH, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-Request-ID, Accept, Origin"
	corsMaxAge       = "43200"
)

// CORS answers preflight requests and sets the cross-origin headers for
// the configured origins. An empty origin list rejects every cross-origin
// request; "*" allows all.
func CORS(allowOrigins []string) gin.HandlerFunc {
	allowAll := false
	for _, o := range allowOrigins {
		if o == "*" {
			allowAll = true
			break
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := ""
		switch {
		case allowAll:
			allowed = "*"
		case origin != "":
			for _, o := range allowOrigins {
				if strings.EqualFold(o, origin) {
					allowed = origin
					break
				}
			}
		}

		if allowed != "" {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", allowed)
			header.Set("Access-Control-Allow-Methods", corsAllowMethods)
			header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			header.Set("Access-Control-Expose-Headers", RequestIDHeader)
			header.Set("Access-Control-Max-Age", corsMaxAge)
			if allowed != "*" {
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
