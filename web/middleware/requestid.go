package middleware

import (
	"time"

	"github.com/Bayrii/drivelog/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIdHeader = "X-Request-ID"

// RequestLogger tags each request with an id (minting one when the client
// sent none) and logs method, path, status and duration on completion.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Header(requestIdHeader, requestId)
		c.Set("request_id", requestId)

		start := time.Now()
		c.Next()

		logger.Debugf("%s %s %d %s request_id=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			requestId,
		)
	}
}
