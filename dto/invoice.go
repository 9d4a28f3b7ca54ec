package dto

import (
	"time"

	"hotelbooking/models"
	"hotelbooking/services/availability"
	"hotelbooking/types"
)

type InvoiceLineResponse struct {
	Name      string      `json:"name"`
	UnitPrice types.Money `json:"unitPrice"`
	Quantity  int         `json:"quantity"`
	LineTotal types.Money `json:"lineTotal"`
}

// InvoiceResponse là DTO cho response của hóa đơn
type InvoiceResponse struct {
	ID              string                `json:"id"`
	InvoiceCode     string                `json:"invoiceCode"`
	ReservationID   string                `json:"reservationId"`
	HotelName       string                `json:"hotelName"`
	RoomName        string                `json:"roomName"`
	GuestName       string                `json:"guestName"`
	GuestEmail      string                `json:"guestEmail"`
	CheckInDate     string                `json:"checkInDate"`
	CheckOutDate    string                `json:"checkOutDate"`
	Nights          int                   `json:"nights"`
	PricePerNight   types.Money           `json:"pricePerNight"`
	Lines           []InvoiceLineResponse `json:"lines"`
	RoomTotal       types.Money           `json:"roomTotal"`
	ServicesTotal   types.Money           `json:"servicesTotal"`
	TotalAmount     types.Money           `json:"totalAmount"`
	PaidAmount      types.Money           `json:"paidAmount"`
	RemainingAmount types.Money           `json:"remainingAmount"`
	IssuedAt        *time.Time            `json:"issuedAt,omitempty"`
}

func NewInvoiceResponse(inv models.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			Name:      l.Name,
			UnitPrice: types.NewMoney(l.UnitPrice),
			Quantity:  l.Quantity,
			LineTotal: types.NewMoney(l.LineTotal),
		}
	}
	out := InvoiceResponse{
		ID:              inv.ID,
		InvoiceCode:     inv.InvoiceCode,
		ReservationID:   inv.ReservationID,
		HotelName:       inv.HotelName,
		RoomName:        inv.RoomName,
		GuestName:       inv.GuestName,
		GuestEmail:      inv.GuestEmail,
		CheckInDate:     inv.CheckInDate.Format(availability.DateLayout),
		CheckOutDate:    inv.CheckOutDate.Format(availability.DateLayout),
		Nights:          inv.Nights,
		PricePerNight:   types.NewMoney(inv.PricePerNight),
		Lines:           lines,
		RoomTotal:       types.NewMoney(inv.RoomTotal),
		ServicesTotal:   types.NewMoney(inv.ServicesTotal),
		TotalAmount:     types.NewMoney(inv.TotalAmount),
		PaidAmount:      types.NewMoney(inv.PaidAmount),
		RemainingAmount: types.NewMoney(inv.RemainingAmount),
	}
	if !inv.IssuedAt.IsZero() {
		out.IssuedAt = &inv.IssuedAt
	}
	return out
}
