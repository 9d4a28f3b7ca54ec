package dto

import (
	"time"

	"hotelbooking/services"
	"hotelbooking/services/availability"
	"hotelbooking/types"
)

// CalendarQuery tháng cần xem, mặc định tháng hiện tại
type CalendarQuery struct {
	Month string `form:"month" binding:"omitempty,yearmonth"`
}

// OccupancyQuery báo cáo công suất
type OccupancyQuery struct {
	Month string `form:"month" binding:"required,yearmonth"`
}

// RevenueQuery báo cáo doanh thu trong [from, to)
type RevenueQuery struct {
	From string `form:"from" binding:"required,isodate"`
	To   string `form:"to" binding:"required,isodate"`
}

// Range đọc from/to theo múi giờ khách sạn
func (q RevenueQuery) Range(loc *time.Location) (time.Time, time.Time, error) {
	from, err := parseDay(q.From, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDay(q.To, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

type OccupancyResponse struct {
	RoomID         string      `json:"roomId"`
	Month          string      `json:"month"`
	Days           int         `json:"days"`
	OccupiedNights int         `json:"occupiedNights"`
	BlockedDays    int         `json:"blockedDays"`
	SellableNights int         `json:"sellableNights"`
	Rate           types.Money `json:"rate"`
}

func NewOccupancyResponse(r services.OccupancyReport) OccupancyResponse {
	return OccupancyResponse{
		RoomID:         r.RoomID,
		Month:          r.Month,
		Days:           r.Days,
		OccupiedNights: r.OccupiedNights,
		BlockedDays:    r.BlockedDays,
		SellableNights: r.SellableNights,
		Rate:           types.NewMoney(r.Rate),
	}
}

type RoomRevenueResponse struct {
	RoomID     string      `json:"roomId"`
	RoomName   string      `json:"roomName"`
	Nights     int         `json:"nights"`
	OrderCount int         `json:"orderCount"`
	Revenue    types.Money `json:"revenue"`
}

type MonthRevenueResponse struct {
	Month      string      `json:"month"`
	Revenue    types.Money `json:"revenue"`
	OrderCount int         `json:"orderCount"`
}

type RevenueResponse struct {
	HotelID          string                 `json:"hotelId"`
	From             string                 `json:"from"`
	To               string                 `json:"to"`
	TotalRevenue     types.Money            `json:"totalRevenue"`
	ExpectedRevenue  types.Money            `json:"expectedRevenue"`
	Rooms            []RoomRevenueResponse  `json:"rooms"`
	Monthly          []MonthRevenueResponse `json:"monthly"`
	Estimated        bool                   `json:"estimated"`
	PricingNote      string                 `json:"pricingNote,omitempty"`
	UnpricedServices int                    `json:"unpricedServices"`
}

// RevenuePricingNote hiển thị cạnh báo cáo khi Estimated
const RevenuePricingNote = "Doanh thu ước tính theo giá phòng và dịch vụ hiện tại"

func NewRevenueResponse(r services.RevenueReport) RevenueResponse {
	out := RevenueResponse{
		HotelID:          r.HotelID,
		From:             r.From.Format(availability.DateLayout),
		To:               r.To.Format(availability.DateLayout),
		TotalRevenue:     types.NewMoney(r.TotalRevenue),
		ExpectedRevenue:  types.NewMoney(r.ExpectedRevenue),
		Rooms:            make([]RoomRevenueResponse, len(r.Rooms)),
		Monthly:          make([]MonthRevenueResponse, len(r.Monthly)),
		Estimated:        r.Estimated,
		UnpricedServices: r.UnpricedServices,
	}
	if r.Estimated {
		out.PricingNote = RevenuePricingNote
	}
	for i, rr := range r.Rooms {
		out.Rooms[i] = RoomRevenueResponse{
			RoomID:     rr.RoomID,
			RoomName:   rr.RoomName,
			Nights:     rr.Nights,
			OrderCount: rr.OrderCount,
			Revenue:    types.NewMoney(rr.Revenue),
		}
	}
	for i, mr := range r.Monthly {
		out.Monthly[i] = MonthRevenueResponse{Month: mr.Month, Revenue: types.NewMoney(mr.Revenue), OrderCount: mr.OrderCount}
	}
	return out
}
