package services

import (
	"context"
	"time"

	"hotelbooking/constants"
	"hotelbooking/services/availability"
	"hotelbooking/services/hotelapi"
)

// CalendarDay một ô trên lịch chọn ngày
type CalendarDay struct {
	Date    string `json:"date"`
	Blocked bool   `json:"blocked"`
	Past    bool   `json:"past"`
}

// RoomCalendar lịch tháng của phòng, ngày blocked không chọn được
type RoomCalendar struct {
	RoomID   string        `json:"roomId"`
	Month    string        `json:"month"`
	Bookable bool          `json:"bookable"`
	Blocked  []string      `json:"blocked"`
	Days     []CalendarDay `json:"days"`
}

// RoomCalendar bung các khoảng bị khóa và reservation active thành từng ngày của tháng.
// Cache theo calendar:<room>:<yyyy-mm>, bị xóa khi có đặt phòng mới trên phòng.
func (f *BookingFacade) RoomCalendar(ctx context.Context, sess hotelapi.Session, roomID string, month time.Time) (RoomCalendar, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	key := constants.CacheKeyCalendar + roomID + ":" + first.Format("2006-01")

	var cal RoomCalendar
	found, err := GetFromRedis(ctx, f.rdb, key, &cal)
	if err != nil {
		f.logger.Warn("cache %s: %v", key, err)
	}
	if !found {
		room, err := f.LoadRoom(ctx, sess, roomID)
		if err != nil {
			return RoomCalendar{}, err
		}
		reservations, err := f.ActiveReservations(ctx, sess, roomID)
		if err != nil {
			return RoomCalendar{}, err
		}
		blocked := availability.ExpandBlockedDates(availability.BlockingRanges(room, reservations, ""))
		cal = BuildCalendar(roomID, first, blocked)
		cal.Bookable = room.IsBookable()
		if err := SetToRedis(ctx, f.rdb, key, cal, constants.CalendarCacheTTL); err != nil {
			f.logger.Warn("cache %s: %v", key, err)
		}
	}

	// ngày quá khứ đổi theo giờ hiện tại nên không lưu trong cache
	today := f.Today().Format(availability.DateLayout)
	for i := range cal.Days {
		cal.Days[i].Past = cal.Days[i].Date < today
	}
	return cal, nil
}

// BuildCalendar dựng các ô của tháng bắt đầu từ first
func BuildCalendar(roomID string, first time.Time, blocked availability.DateSet) RoomCalendar {
	next := first.AddDate(0, 1, 0)
	cal := RoomCalendar{
		RoomID:  roomID,
		Month:   first.Format("2006-01"),
		Blocked: []string{},
	}
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		day := CalendarDay{Date: d.Format(availability.DateLayout), Blocked: blocked.Contains(d)}
		if day.Blocked {
			cal.Blocked = append(cal.Blocked, day.Date)
		}
		cal.Days = append(cal.Days, day)
	}
	return cal
}
