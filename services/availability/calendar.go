package availability

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout định dạng ngày dùng trong API và cache
const DateLayout = "2006-01-02"

// DefaultTimezone múi giờ của khách sạn khi không cấu hình APP_TIMEZONE
const DefaultTimezone = "Asia/Ho_Chi_Minh"

// DateOf chuẩn hóa một thời điểm về 00:00 UTC của chính ngày lịch đó.
// Giờ trong ngày bị bỏ qua nên hai thời điểm cùng ngày luôn bằng nhau.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateIn lấy ngày lịch của t khi nhìn từ múi giờ loc
func DateIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return DateOf(t)
	}
	return DateOf(t.In(loc))
}

// Today trả về ngày hôm nay theo múi giờ của khách sạn
func Today(now time.Time, loc *time.Location) time.Time {
	return DateIn(now, loc)
}

// DaysBetween số đêm giữa hai ngày, tính theo ngày lịch (không theo giờ đồng hồ)
func DaysBetween(checkIn, checkOut time.Time) int {
	return int(DateOf(checkOut).Sub(DateOf(checkIn)).Hours() / 24)
}

// ParseDate đọc ngày dạng 2006-01-02 hoặc RFC3339.
// Với RFC3339, ngày lịch được lấy theo múi giờ loc để tránh lệch một ngày.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateIn(t, loc), nil
}

// LoadLocation đọc múi giờ, rơi về DefaultTimezone khi tên rỗng
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	return time.LoadLocation(name)
}
