package hotelapi

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError mọi lỗi khi gọi hotel API: lỗi mạng hoặc status không phải 2xx
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("hotelapi %s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("hotelapi %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("hotelapi %s: status %d", e.Op, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NotFound upstream trả 404
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsNotFound kiểm tra err có phải 404 từ hotel API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

// StatusOf status code của lỗi upstream, 0 nếu là lỗi mạng
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
