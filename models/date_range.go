package models

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

const dateLayout = "2006-01-02"

// DateRange khoảng ngày, dùng cho cả thời gian bị khóa của phòng lẫn thời gian lưu trú.
// Start và End là ngày lịch (00:00 UTC).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange tạo khoảng ngày từ hai thời điểm, bỏ phần giờ
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: dateOnly(start), End: dateOnly(end)}
}

// IsMalformed khoảng ngày có ngày bắt đầu sau ngày kết thúc
func (r DateRange) IsMalformed() bool {
	return r.Start.After(r.End)
}

// Equal so sánh theo ngày lịch
func (r DateRange) Equal(other DateRange) bool {
	return dateOnly(r.Start).Equal(dateOnly(other.Start)) && dateOnly(r.End).Equal(dateOnly(other.End))
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format(dateLayout), r.End.Format(dateLayout))
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}{
		Start: r.Start.Format(dateLayout),
		End:   r.End.Format(dateLayout),
	})
}

func (r *DateRange) UnmarshalJSON(data []byte) error {
	var raw struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := parseDay(raw.Start)
	if err != nil {
		return err
	}
	end, err := parseDay(raw.End)
	if err != nil {
		return err
	}
	r.Start, r.End = start, end
	return nil
}

func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return dateOnly(t), nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
