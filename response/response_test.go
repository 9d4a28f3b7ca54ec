package response

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotelbooking/errors"
	"hotelbooking/services/hotelapi"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v (%s)", err, w.Body.String())
	}
	return body
}

func TestFromErrorMapsCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{errors.NewAppError(errors.ErrCodeOverlaps, "Trùng lịch", nil), http.StatusConflict, "OVERLAPS"},
		{errors.NewAppError(errors.ErrCodeInThePast, "Quá khứ", nil), http.StatusBadRequest, "IN_THE_PAST"},
		{errors.NewAppError(errors.ErrCodeSubmissionInFlight, "Đang gửi", nil), http.StatusConflict, "SUBMISSION_IN_FLIGHT"},
		{errors.NewAppError(errors.ErrCodeSubmissionFailed, "Lỗi", stderrors.New("x")), http.StatusBadGateway, "SUBMISSION_FAILED"},
		{errors.NewAppError(errors.ErrCodeForbidden, "Cấm", nil), http.StatusForbidden, "FORBIDDEN"},
		{&hotelapi.APIError{Op: "GET /rooms/x", StatusCode: 404}, http.StatusNotFound, "UPSTREAM_ERROR"},
		{&hotelapi.APIError{Op: "GET /rooms/x", StatusCode: 500}, http.StatusBadGateway, "UPSTREAM_ERROR"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		FromError(c, tc.err, nil)
		if w.Code != tc.status {
			t.Fatalf("%v: status = %d, want %d", tc.err, w.Code, tc.status)
		}
		if body := decode(t, w); body.ErrorCode != tc.code || body.Code != 0 {
			t.Fatalf("%v: body = %+v", tc.err, body)
		}
	}
}

func TestFromErrorUnknownIsServerError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	FromError(c, stderrors.New("boom"), nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSuccessWithPagination(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SuccessWithPagination(c, []int{1, 2}, 2, 10, 12)
	body := decode(t, w)
	if body.Code != 1 || body.Mess != "Thành công" || body.Pagination == nil || body.Pagination.Total != 12 {
		t.Fatalf("unexpected body %+v", body)
	}
}
