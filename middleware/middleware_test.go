package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelbooking/errors"
	"hotelbooking/services/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, role int) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userinfo": map[string]interface{}{"userid": "u1", "role": role},
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(SessionMiddleware())
	handlers = append(handlers, func(c *gin.Context) {
		sess := CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"session": sess.ID, "user": sess.UserID, "role": sess.Role})
	})
	r.GET("/", handlers...)
	return r
}

func TestAuthMiddlewareRoles(t *testing.T) {
	r := newRouter(AuthMiddleware(1, 2))

	cases := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer garbage", http.StatusUnauthorized},
		{"Bearer " + token(t, 3), http.StatusForbidden},
		{"Bearer " + token(t, 2), http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)
		if w.Code != tc.status {
			t.Fatalf("header %.20q: status = %d, want %d (%s)", tc.header, w.Code, tc.status, w.Body.String())
		}
	}
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	r := newRouter(OptionalAuth())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"user":""`) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}

func TestSessionMiddlewareKeepsValidID(t *testing.T) {
	r := newRouter()
	id := uuid.NewString()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderSessionID, id)
	r.ServeHTTP(w, req)
	if w.Header().Get(HeaderSessionID) != id {
		t.Fatalf("session id not kept")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderSessionID, "../../etc")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderSessionID); got == "../../etc" || got == "" {
		t.Fatalf("invalid session id should be replaced, got %q", got)
	}
}

func TestAccessLogAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), SessionMiddleware(), AccessLog(logger.NewLoggerTo(&buf, logger.InfoLevel)), ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy phòng", nil))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get(HeaderRequestID) != "rid-1" {
		t.Fatalf("request id not echoed")
	}
	if !strings.Contains(buf.String(), "request_id=rid-1") || !strings.Contains(buf.String(), "status=404") {
		t.Fatalf("unexpected log %q", buf.String())
	}
}
