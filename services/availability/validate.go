package availability

import (
	"fmt"
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"
)

// ResultKind kết quả kiểm tra khoảng ngày
type ResultKind int

const (
	Ok ResultKind = iota
	InvalidOrder
	InThePast
	Overlaps
)

func (k ResultKind) String() string {
	switch k {
	case Ok:
		return "ok"
	case InvalidOrder:
		return "invalid_order"
	case InThePast:
		return "in_the_past"
	case Overlaps:
		return "overlaps"
	}
	return "unknown"
}

// Result kết quả của ValidateRange. Conflict chỉ có khi Kind == Overlaps.
type Result struct {
	Kind     ResultKind
	Conflict *models.DateRange
}

// IsOk khoảng ngày hợp lệ
func (r Result) IsOk() bool {
	return r.Kind == Ok
}

// Message thông báo hiển thị trên form, mỗi loại lỗi một câu riêng
func (r Result) Message() string {
	switch r.Kind {
	case InvalidOrder:
		return "Ngày trả phòng phải sau ngày nhận phòng"
	case InThePast:
		return "Ngày nhận phòng không được nhỏ hơn ngày hiện tại"
	case Overlaps:
		if r.Conflict != nil {
			return fmt.Sprintf("Phòng đã được đặt hoặc không khả dụng từ %s đến %s",
				r.Conflict.Start.Format(DateLayout), r.Conflict.End.Format(DateLayout))
		}
		return "Phòng đã được đặt hoặc không khả dụng trong khoảng thời gian này"
	}
	return ""
}

// Err chuyển kết quả thành AppError, nil khi hợp lệ
func (r Result) Err() error {
	switch r.Kind {
	case InvalidOrder:
		return errors.NewAppError(errors.ErrCodeInvalidOrder, r.Message(), nil)
	case InThePast:
		return errors.NewAppError(errors.ErrCodeInThePast, r.Message(), nil)
	case Overlaps:
		return errors.NewAppError(errors.ErrCodeOverlaps, r.Message(), nil)
	}
	return nil
}

// ValidateRange kiểm tra khoảng lưu trú candidate với các khoảng đã bị chiếm.
// Thứ tự kiểm tra: thứ tự ngày, quá khứ, trùng lịch.
// Trùng lịch theo nửa khoảng [start, end): trả phòng và nhận phòng cùng ngày không bị tính là trùng.
func ValidateRange(candidate models.DateRange, today time.Time, existing []models.DateRange) Result {
	checkIn, checkOut := DateOf(candidate.Start), DateOf(candidate.End)
	if !checkOut.After(checkIn) {
		return Result{Kind: InvalidOrder}
	}
	if checkIn.Before(DateOf(today)) {
		return Result{Kind: InThePast}
	}
	for i := range existing {
		start, end := DateOf(existing[i].Start), DateOf(existing[i].End)
		if start.After(end) {
			continue
		}
		if checkIn.Before(end) && start.Before(checkOut) {
			conflict := models.DateRange{Start: start, End: end}
			return Result{Kind: Overlaps, Conflict: &conflict}
		}
	}
	return Result{Kind: Ok}
}

// CheckCapacity số khách phải từ 1 đến sức chứa của phòng
func CheckCapacity(guests, capacity int) error {
	if guests < 1 {
		return errors.NewAppError(errors.ErrCodeValidation, "Số khách phải lớn hơn 0", nil)
	}
	if capacity > 0 && guests > capacity {
		return errors.NewAppError(errors.ErrCodeOverCapacity,
			fmt.Sprintf("Phòng chỉ chứa tối đa %d khách", capacity), nil)
	}
	return nil
}

// BlockingRanges gom các khoảng ngày đang chặn phòng: nonAvailability của phòng cộng
// các reservation active của chính phòng đó. Reservation excludeID (đang được sửa) bị bỏ qua,
// và khoảng ngày cũ của nó cũng bị gỡ một lần khỏi nonAvailability.
func BlockingRanges(room models.Room, reservations []models.Reservation, excludeID string) []models.DateRange {
	var excluded *models.DateRange
	out := make([]models.DateRange, 0, len(room.NonAvailability)+len(reservations))
	for i := range reservations {
		res := &reservations[i]
		if excludeID != "" && res.ID == excludeID {
			stay := res.Stay()
			excluded = &stay
			continue
		}
		if !res.IsActive() || (res.RoomID != "" && res.RoomID != room.ID) {
			continue
		}
		out = append(out, res.Stay())
	}
	removed := false
	for _, r := range room.NonAvailability {
		if excluded != nil && !removed && r.Equal(*excluded) {
			removed = true
			continue
		}
		out = append(out, r)
	}
	return out
}
