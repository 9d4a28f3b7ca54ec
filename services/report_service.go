package services

import (
	"context"
	"sort"
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/availability"
	"hotelbooking/services/hotelapi"

	"github.com/shopspring/decimal"
)

// OccupancyReport công suất phòng trong một tháng
type OccupancyReport struct {
	RoomID         string          `json:"roomId"`
	Month          string          `json:"month"`
	Days           int             `json:"days"`
	OccupiedNights int             `json:"occupiedNights"`
	BlockedDays    int             `json:"blockedDays"` // khóa bởi quản trị, không có reservation
	SellableNights int             `json:"sellableNights"`
	Rate           decimal.Decimal `json:"rate"` // phần trăm, 2 chữ số thập phân
}

// RoomRevenue doanh thu theo phòng
type RoomRevenue struct {
	RoomID     string          `json:"roomId"`
	RoomName   string          `json:"roomName"`
	Nights     int             `json:"nights"`
	OrderCount int             `json:"orderCount"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// MonthRevenue doanh thu theo tháng trả phòng
type MonthRevenue struct {
	Month      string          `json:"month"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int             `json:"orderCount"`
}

// RevenueReport doanh thu của khách sạn trong khoảng [from, to).
// Estimated true khi số tiền tính theo giá hiện tại chứ không phải giá lúc đặt.
type RevenueReport struct {
	HotelID          string          `json:"hotelId"`
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`    // reservation đã hoàn thành
	ExpectedRevenue  decimal.Decimal `json:"expectedRevenue"` // reservation đang active
	Rooms            []RoomRevenue   `json:"rooms"`
	Monthly          []MonthRevenue  `json:"monthly"`
	Estimated        bool            `json:"estimated"`
	UnpricedServices int             `json:"unpricedServices"` // dịch vụ không còn trong danh mục, không tính tiền
}

// BuildOccupancy tính công suất phòng trong tháng chứa month.
// Đêm d có khách khi checkIn <= d < checkOut của một reservation không bị hủy.
func BuildOccupancy(room models.Room, reservations []models.Reservation, month time.Time) OccupancyReport {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	days := availability.DaysBetween(first, next)

	occupied := make(availability.DateSet)
	for _, r := range reservations {
		if r.Status == models.ReservationStatusCancelled || r.RoomID != room.ID {
			continue
		}
		for d := availability.DateOf(r.CheckInDate); d.Before(availability.DateOf(r.CheckOutDate)); d = d.AddDate(0, 0, 1) {
			if !d.Before(first) && d.Before(next) {
				occupied[d] = struct{}{}
			}
		}
	}

	blocked := 0
	for d := range availability.ExpandBlockedDates(room.NonAvailability) {
		if !d.Before(first) && d.Before(next) && !occupied.Contains(d) {
			blocked++
		}
	}

	report := OccupancyReport{
		RoomID:         room.ID,
		Month:          first.Format("2006-01"),
		Days:           days,
		OccupiedNights: occupied.Len(),
		BlockedDays:    blocked,
		SellableNights: days - blocked,
		Rate:           decimal.Zero,
	}
	if report.SellableNights > 0 {
		report.Rate = decimal.NewFromInt(int64(report.OccupiedNights)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(report.SellableNights))).
			Round(2)
	}
	return report
}

// BuildRevenue cộng tiền phòng và dịch vụ của các reservation trả phòng trong [from, to).
// Hotel API không lưu giá lúc đặt nên giá lấy theo giá phòng và danh mục dịch vụ hiện tại.
func BuildRevenue(hotelID string, rooms []models.Room, services []models.Service, reservations []models.Reservation, from, to time.Time) (RevenueReport, error) {
	roomByID := make(map[string]models.Room, len(rooms))
	for _, r := range rooms {
		roomByID[r.ID] = r
	}
	catalogue := make(map[string]models.Service, len(services))
	for _, s := range services {
		catalogue[s.ID] = s
	}

	report := RevenueReport{
		HotelID:         hotelID,
		From:            availability.DateOf(from),
		To:              availability.DateOf(to),
		TotalRevenue:    decimal.Zero,
		ExpectedRevenue: decimal.Zero,
	}
	perRoom := map[string]*RoomRevenue{}
	perMonth := map[string]*MonthRevenue{}

	for _, res := range reservations {
		if res.Status == models.ReservationStatusCancelled {
			continue
		}
		checkOut := availability.DateOf(res.CheckOutDate)
		if checkOut.Before(report.From) || !checkOut.Before(report.To) {
			continue
		}
		room, ok := roomByID[res.RoomID]
		if !ok {
			continue
		}

		selected := make([]models.SelectedService, 0, len(res.Services))
		for _, ref := range res.Services {
			svc, ok := catalogue[ref.ServiceID]
			if !ok {
				report.UnpricedServices++
				continue
			}
			if ref.Quantity > 0 {
				selected = append(selected, models.SelectedService{Service: svc, Quantity: ref.Quantity})
			}
		}
		quote, err := availability.QuoteStay(res.CheckInDate, res.CheckOutDate, room.PricePerNight, selected)
		if err != nil {
			return RevenueReport{}, err
		}
		report.Estimated = true

		if res.Status == models.ReservationStatusActive {
			report.ExpectedRevenue = report.ExpectedRevenue.Add(quote.GrandTotal)
			continue
		}
		report.TotalRevenue = report.TotalRevenue.Add(quote.GrandTotal)

		rr, ok := perRoom[room.ID]
		if !ok {
			rr = &RoomRevenue{RoomID: room.ID, RoomName: room.Name, Revenue: decimal.Zero}
			perRoom[room.ID] = rr
		}
		rr.Nights += quote.Nights
		rr.OrderCount++
		rr.Revenue = rr.Revenue.Add(quote.GrandTotal)

		key := checkOut.Format("2006-01")
		mr, ok := perMonth[key]
		if !ok {
			mr = &MonthRevenue{Month: key, Revenue: decimal.Zero}
			perMonth[key] = mr
		}
		mr.OrderCount++
		mr.Revenue = mr.Revenue.Add(quote.GrandTotal)
	}

	report.Rooms = make([]RoomRevenue, 0, len(perRoom))
	for _, rr := range perRoom {
		report.Rooms = append(report.Rooms, *rr)
	}
	sort.Slice(report.Rooms, func(i, j int) bool {
		if !report.Rooms[i].Revenue.Equal(report.Rooms[j].Revenue) {
			return report.Rooms[i].Revenue.GreaterThan(report.Rooms[j].Revenue)
		}
		return report.Rooms[i].RoomID < report.Rooms[j].RoomID
	})
	report.Monthly = make([]MonthRevenue, 0, len(perMonth))
	for _, mr := range perMonth {
		report.Monthly = append(report.Monthly, *mr)
	}
	sort.Slice(report.Monthly, func(i, j int) bool { return report.Monthly[i].Month < report.Monthly[j].Month })
	return report, nil
}

// Occupancy báo cáo công suất của phòng trong tháng
func (f *BookingFacade) Occupancy(ctx context.Context, sess hotelapi.Session, roomID string, month time.Time) (OccupancyReport, error) {
	if !canManage(sess) {
		return OccupancyReport{}, errors.NewAppError(errors.ErrCodeForbidden, "Không có quyền xem báo cáo", nil)
	}
	room, err := f.LoadRoom(ctx, sess, roomID)
	if err != nil {
		return OccupancyReport{}, err
	}
	reservations, err := f.api.ListRoomReservations(ctx, sess, roomID)
	if err != nil {
		return OccupancyReport{}, upstreamError(err, "Không tìm thấy phòng")
	}
	return BuildOccupancy(room, reservations, month), nil
}

// Revenue báo cáo doanh thu của khách sạn
func (f *BookingFacade) Revenue(ctx context.Context, sess hotelapi.Session, hotelID string, from, to time.Time) (RevenueReport, error) {
	if !canManage(sess) {
		return RevenueReport{}, errors.NewAppError(errors.ErrCodeForbidden, "Không có quyền xem báo cáo", nil)
	}
	if !from.Before(to) {
		return RevenueReport{}, errors.NewAppError(errors.ErrCodeInvalidOrder, "Ngày bắt đầu phải trước ngày kết thúc", nil)
	}
	rooms, err := f.api.ListHotelRooms(ctx, sess, hotelID)
	if err != nil {
		return RevenueReport{}, upstreamError(err, "Không tìm thấy khách sạn")
	}
	services, err := f.LoadServices(ctx, sess, hotelID)
	if err != nil {
		return RevenueReport{}, err
	}
	reservations, err := f.api.ListHotelReservations(ctx, sess, hotelID)
	if err != nil {
		return RevenueReport{}, upstreamError(err, "Không tìm thấy khách sạn")
	}
	return BuildRevenue(hotelID, rooms, services, reservations, from, to)
}
