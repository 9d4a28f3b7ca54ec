package middleware

import (
	"strings"

	"hotelbooking/constants"
	"hotelbooking/errors"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/hotelapi"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware bắt buộc bearer token, roles rỗng là mọi role đều được
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.FromError(c, errors.NewAppError(errors.ErrCodeMissingToken, "Chưa xác thực", nil), nil)
			c.Abort()
			return
		}

		sess, err := services.SessionFromToken(SessionID(c), strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			response.FromError(c, err, nil)
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == sess.Role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		c.Set(constants.ContextSession, sess)
		c.Next()
	}
}

// OptionalAuth đọc token nếu có, không có thì là khách vãng lai
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := hotelapi.Session{ID: SessionID(c)}
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parsed, err := services.SessionFromToken(sess.ID, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				response.FromError(c, err, nil)
				c.Abort()
				return
			}
			sess = parsed
		}
		c.Set(constants.ContextSession, sess)
		c.Next()
	}
}

// CurrentSession session của request, luôn có ID
func CurrentSession(c *gin.Context) hotelapi.Session {
	if v, ok := c.Get(constants.ContextSession); ok {
		if sess, ok := v.(hotelapi.Session); ok {
			return sess
		}
	}
	return hotelapi.Session{ID: SessionID(c)}
}

// ErrorHandler trả lỗi controller đã gắn qua c.Error nếu chưa có response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err, nil)
		}
	}
}
