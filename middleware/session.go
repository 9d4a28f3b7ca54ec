package middleware

import (
	"hotelbooking/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderSessionID header mang session id của trình duyệt
const HeaderSessionID = "X-Session-ID"

// SessionMiddleware tạo sessionId nếu chưa có và gán vào context
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(HeaderSessionID)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
		}

		c.Set(constants.ContextSessionID, sessionID)
		c.Writer.Header().Set(HeaderSessionID, sessionID)
		c.Next()
	}
}

// SessionID session id của request hiện tại
func SessionID(c *gin.Context) string {
	return c.GetString(constants.ContextSessionID)
}
