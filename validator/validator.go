package validator

import (
	stderrors "errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"hotelbooking/errors"
	"hotelbooking/services/availability"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MaxImageSize dung lượng ảnh tối đa khi upload
const MaxImageSize = 5 << 20

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// Register gắn các rule riêng vào validator của gin
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

// RegisterOn gắn rule isodate (2006-01-02 hoặc RFC3339) và yearmonth (2006-01)
func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("isodate", isoDate); err != nil {
		return err
	}
	return v.RegisterValidation("yearmonth", yearMonth)
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := availability.ParseDate(fl.Field().String(), time.UTC)
	return err == nil
}

func yearMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}

// BindingError chuyển lỗi bind/validate của gin thành AppError với thông báo tiếng Việt
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Dữ liệu không hợp lệ", err)
	}
	fe := verrs[0]
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		return errors.NewAppError(errors.ErrCodeRequiredField, field+" không được để trống", err)
	case "isodate":
		msg = field + " phải có dạng YYYY-MM-DD"
	case "yearmonth":
		msg = field + " phải có dạng YYYY-MM"
	case "min":
		msg = fmt.Sprintf("%s phải lớn hơn hoặc bằng %s", field, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s phải nhỏ hơn hoặc bằng %s", field, fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s phải là một trong: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		msg = field + " không hợp lệ"
	}
	return errors.NewAppError(errors.ErrCodeValidation, msg, err)
}

// ValidateImage kiểm tra ảnh upload
func ValidateImage(header *multipart.FileHeader) error {
	if header == nil {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Ảnh không được để trống", nil)
	}
	if header.Size > MaxImageSize {
		return errors.NewAppError(errors.ErrCodeValidation, "Ảnh không được vượt quá 5MB", nil)
	}
	if !imageExts[strings.ToLower(filepath.Ext(header.Filename))] {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Chỉ chấp nhận ảnh jpg, png, webp", nil)
	}
	return nil
}

// ParseMonth đọc tháng dạng 2006-01, rỗng thì lấy tháng của today
func ParseMonth(s string, today time.Time) (time.Time, error) {
	if s == "" {
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Tháng không hợp lệ", err)
	}
	return t, nil
}
