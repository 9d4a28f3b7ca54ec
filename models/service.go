package models

import "github.com/shopspring/decimal"

// Service dịch vụ đi kèm của khách sạn (ăn sáng, đưa đón, spa...)
type Service struct {
	ID        string          `json:"id"`
	HotelID   string          `json:"hotelId,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Available bool            `json:"available"`
}

// SelectedService dịch vụ khách chọn kèm số lượng
type SelectedService struct {
	Service  Service `json:"service"`
	Quantity int     `json:"quantity"`
}

// ServiceRef tham chiếu dịch vụ trong reservation, chỉ giữ ID
type ServiceRef struct {
	ServiceID string `json:"service"`
	Quantity  int    `json:"quantity"`
}
