package server

import (
	"time"

	"github.com/anisan-cli/anipahe/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the id correlating a request with its log lines.
const HeaderRequestID = "X-Request-ID"

// requestID tags every request with an id, reusing the caller's when given,
// and attaches it to the request context for logging.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(HeaderRequestID, id)
		ctx := log.NewContext(c.Request.Context(), log.Fields{"request_id": id})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+HeaderRequestID)
		c.Header("Access-Control-Expose-Headers", HeaderRequestID)
		c.Next()
	}
}

// accessLog writes one structured line per request.
func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.FromContext(c.Request.Context()).WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("handled request")
	}
}
