package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"crowdfund.backend/pkg/logger"
)

// LoggerMiddleware logs every request once the handler chain has finished
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		// AuthMiddleware may have replaced the request context with one carrying the account.
		logger.LogRequest(c.Request.Context(), c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}
