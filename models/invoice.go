package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice hóa đơn do API sinh ra từ một reservation đã hoàn thành.
// Phía web chỉ hiển thị và tính lại tổng.
type Invoice struct {
	ID              string          `json:"id"`
	InvoiceCode     string          `json:"invoiceCode"`
	ReservationID   string          `json:"reservationId"`
	HotelName       string          `json:"hotelName"`
	RoomName        string          `json:"roomName"`
	GuestName       string          `json:"guestName"`
	GuestEmail      string          `json:"guestEmail"`
	CheckInDate     time.Time       `json:"checkInDate"`
	CheckOutDate    time.Time       `json:"checkOutDate"`
	PricePerNight   decimal.Decimal `json:"pricePerNight"`
	Lines           []InvoiceLine   `json:"lines"`
	Nights          int             `json:"nights"`
	RoomTotal       decimal.Decimal `json:"roomTotal"`
	ServicesTotal   decimal.Decimal `json:"servicesTotal"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	IssuedAt        time.Time       `json:"issuedAt"`
}

// InvoiceLine một dòng dịch vụ trên hóa đơn
type InvoiceLine struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}
