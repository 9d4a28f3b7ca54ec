package availability

import (
	"sort"
	"time"

	"hotelbooking/models"
)

// DateSet tập ngày lịch, key là ngày đã chuẩn hóa bởi DateOf
type DateSet map[time.Time]struct{}

// Contains kiểm tra ngày có trong tập (giờ trong ngày bị bỏ qua)
func (s DateSet) Contains(t time.Time) bool {
	_, ok := s[DateOf(t)]
	return ok
}

// Len số ngày trong tập
func (s DateSet) Len() int {
	return len(s)
}

// Sorted danh sách ngày tăng dần
func (s DateSet) Sorted() []time.Time {
	out := make([]time.Time, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Strings danh sách ngày dạng 2006-01-02, tăng dần
func (s DateSet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, d := range sorted {
		out[i] = d.Format(DateLayout)
	}
	return out
}

// ExpandBlockedDates bung các khoảng ngày bị khóa thành tập ngày cụ thể, tính cả hai đầu.
// Khoảng lỗi (start > end) không sinh ngày nào.
func ExpandBlockedDates(ranges []models.DateRange) DateSet {
	set := make(DateSet)
	for _, r := range ranges {
		start, end := DateOf(r.Start), DateOf(r.End)
		if start.After(end) {
			continue
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			set[d] = struct{}{}
		}
	}
	return set
}

// MalformedRanges trả về các khoảng có start > end để caller ghi log
func MalformedRanges(ranges []models.DateRange) []models.DateRange {
	var out []models.DateRange
	for _, r := range ranges {
		if DateOf(r.Start).After(DateOf(r.End)) {
			out = append(out, r)
		}
	}
	return out
}
