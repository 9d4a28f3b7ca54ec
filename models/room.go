package models

import (
	"github.com/shopspring/decimal"
)

// Room phòng của một khách sạn
type Room struct {
	ID              string          `json:"id"`
	HotelID         string          `json:"hotelId"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	PricePerNight   decimal.Decimal `json:"pricePerNight"`
	Capacity        int             `json:"capacity"`
	NonAvailability []DateRange     `json:"nonAvailability"` // Các khoảng ngày bị khóa (booking đã xác nhận, bảo trì...)
	Available       bool            `json:"available"`       // Công tắc bật/tắt của quản trị, không phụ thuộc ngày
	State           bool            `json:"state"`           // false: phòng đã bị xóa mềm
	Images          []string        `json:"images,omitempty"`
}

// IsBookable phòng đang mở bán và chưa bị xóa mềm
func (r *Room) IsBookable() bool {
	return r.Available && r.State
}
