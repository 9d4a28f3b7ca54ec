package services

import (
	"testing"
	"time"

	"hotelbooking/errors"

	"github.com/dgrijalva/jwt-go"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestParseTokenReadsUserInfo(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"userinfo": map[string]interface{}{"userid": "64f0c2", "role": 3},
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	userID, role, err := ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "64f0c2" || role != 3 {
		t.Fatalf("got user %q role %d", userID, role)
	}

	sess, err := SessionFromToken("sess-1", token)
	if err != nil || sess.ID != "sess-1" || sess.Token != token || sess.Anonymous() {
		t.Fatalf("unexpected session %+v (%v)", sess, err)
	}
}

func TestParseTokenNumericUserID(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"userinfo": map[string]interface{}{"userid": 42, "role": "1"}})
	userID, role, err := ParseToken(token)
	if err != nil || userID != "42" || role != 1 {
		t.Fatalf("got %q %d %v", userID, role, err)
	}
}

func TestParseTokenRejects(t *testing.T) {
	expired := signedToken(t, jwt.MapClaims{
		"userinfo": map[string]interface{}{"userid": "u1", "role": 3},
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	noInfo := signedToken(t, jwt.MapClaims{"sub": "u1"})
	noRole := signedToken(t, jwt.MapClaims{"userinfo": map[string]interface{}{"userid": "u1"}})

	for name, token := range map[string]string{
		"garbage": "not-a-token",
		"expired": expired,
		"no info": noInfo,
		"no role": noRole,
	} {
		if _, _, err := ParseToken(token); !errors.HasCode(err, errors.ErrCodeInvalidToken) {
			t.Fatalf("%s: expected INVALID_TOKEN, got %v", name, err)
		}
	}
}
