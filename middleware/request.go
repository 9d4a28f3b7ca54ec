package middleware

import (
	"time"

	"hotelbooking/constants"
	"hotelbooking/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID header mang request id
const HeaderRequestID = "X-Request-ID"

// RequestID gán id cho mỗi request để log và trace
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(constants.ContextRequestID, rid)
		c.Writer.Header().Set(HeaderRequestID, rid)
		c.Next()
	}
}

// GetRequestID request id trong context
func GetRequestID(c *gin.Context) string {
	return c.GetString(constants.ContextRequestID)
}

// AccessLog ghi một dòng log cho mỗi request
func AccessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		line := "[HTTP] request_id=%s session=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s"
		args := []interface{}{
			GetRequestID(c),
			SessionID(c),
			c.Request.Method,
			c.Request.URL.Path,
			status,
			float64(latency.Microseconds()) / 1000.0,
			c.ClientIP(),
		}
		switch {
		case status >= 500:
			log.Error(line, args...)
		case status >= 400:
			log.Warn(line, args...)
		default:
			log.Info(line, args...)
		}
	}
}
