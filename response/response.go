package response

import (
	stderrors "errors"
	"net/http"

	"hotelbooking/errors"
	"hotelbooking/services/hotelapi"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	ErrorCode  string      `json:"errorCode,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
	})
}

// Created trả về 201 cho tài nguyên vừa tạo
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
	})
}

// SuccessWithPagination trả về response thành công có phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error trả về response lỗi
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: code,
		Mess: message,
	})
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Lỗi server",
	})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "Chưa xác thực",
	})
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Code: 0,
		Mess: "Không có quyền truy cập",
	})
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: "Không tìm thấy",
	})
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:      0,
		Mess:      message,
		ErrorCode: string(errors.ErrCodeValidation),
	})
}

// StatusFor HTTP status tương ứng với mã lỗi
func StatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		return http.StatusForbidden
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeOverlaps, errors.ErrCodeSubmissionInFlight, errors.ErrCodeRoomUnavailable,
		errors.ErrCodeInvalidState, errors.ErrCodeInvalidTransition:
		return http.StatusConflict
	case errors.ErrCodeInvalidOrder, errors.ErrCodeInThePast, errors.ErrCodeMalformedRange,
		errors.ErrCodeOverCapacity, errors.ErrCodeServiceInvalid, errors.ErrCodeValidation,
		errors.ErrCodeRequiredField, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidAmount:
		return http.StatusBadRequest
	case errors.ErrCodeSubmissionFailed, errors.ErrCodeUpstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// FromError ghi response cho error bất kỳ. data (có thể nil) đi kèm để client hiển thị lại form.
func FromError(c *gin.Context, err error, data interface{}) {
	if appErr := errors.GetAppError(err); appErr != nil {
		c.JSON(StatusFor(appErr.Code), Response{
			Code:      0,
			Mess:      appErr.Message,
			ErrorCode: string(appErr.Code),
			Data:      data,
		})
		return
	}

	var apiErr *hotelapi.APIError
	if stderrors.As(err, &apiErr) {
		status := http.StatusBadGateway
		if apiErr.NotFound() {
			status = http.StatusNotFound
		}
		c.JSON(status, Response{
			Code:      0,
			Mess:      "Không thể kết nối tới hệ thống khách sạn",
			ErrorCode: string(errors.ErrCodeUpstream),
			Data:      data,
		})
		return
	}

	ServerError(c)
}
