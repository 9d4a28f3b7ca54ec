package services

import (
	"strconv"
	"strings"

	"hotelbooking/errors"
	"hotelbooking/services/hotelapi"

	"github.com/dgrijalva/jwt-go"
	"github.com/goccy/go-json"
)

// ParseToken đọc userid và role từ payload của token.
// Chữ ký do hotel API kiểm tra, phía web chỉ đọc claims.
func ParseToken(tokenString string) (string, int, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return "", 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Token không hợp lệ", nil)
	}

	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return "", 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Không thể giải mã token", err)
	}

	claimsMap := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claimsMap); err != nil {
		return "", 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Không thể parse token", err)
	}
	if err := claimsMap.Valid(); err != nil {
		return "", 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Token đã hết hạn", err)
	}

	userInfo, ok := claimsMap["userinfo"].(map[string]interface{})
	if !ok {
		return "", 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy thông tin user trong token", nil)
	}

	userID, ok := claimString(userInfo["userid"])
	if !ok || userID == "" {
		return "", 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy ID user trong token", nil)
	}

	role, ok := claimInt(userInfo["role"])
	if !ok {
		return "", 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy role trong token", nil)
	}

	return userID, role, nil
}

// SessionFromToken tạo Session cho request từ bearer token
func SessionFromToken(sessionID, tokenString string) (hotelapi.Session, error) {
	userID, role, err := ParseToken(tokenString)
	if err != nil {
		return hotelapi.Session{}, err
	}
	return hotelapi.Session{ID: sessionID, UserID: userID, Role: role, Token: tokenString}, nil
}

func claimString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatInt(int64(val), 10), true
	}
	return "", false
}

func claimInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case float64:
		return int(val), true
	case string:
		n, err := strconv.Atoi(val)
		return n, err == nil
	}
	return 0, false
}
