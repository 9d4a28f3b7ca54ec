package availability

import (
	"fmt"
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"

	"github.com/shopspring/decimal"
)

// ServiceLine một dòng dịch vụ trong báo giá
type ServiceLine struct {
	ServiceID string          `json:"serviceId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Quote báo giá cho một lần lưu trú
type Quote struct {
	Nights        int             `json:"nights"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	RoomTotal     decimal.Decimal `json:"roomTotal"`
	ServiceLines  []ServiceLine   `json:"serviceLines"`
	ServicesTotal decimal.Decimal `json:"servicesTotal"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
}

// ComputeTotal tính tiền phòng = số đêm × giá mỗi đêm, cộng tiền dịch vụ = Σ giá × số lượng.
// Toàn bộ phép tính dùng decimal, không qua float.
func ComputeTotal(nights int, pricePerNight decimal.Decimal, selected []models.SelectedService) (Quote, error) {
	if nights < 0 {
		return Quote{}, errors.NewAppError(errors.ErrCodeInvalidAmount, "Số đêm không được âm", nil)
	}
	if pricePerNight.IsNegative() {
		return Quote{}, errors.NewAppError(errors.ErrCodeInvalidAmount, "Giá phòng không được âm", nil)
	}

	quote := Quote{
		Nights:        nights,
		PricePerNight: pricePerNight,
		RoomTotal:     pricePerNight.Mul(decimal.NewFromInt(int64(nights))),
		ServiceLines:  make([]ServiceLine, 0, len(selected)),
		ServicesTotal: decimal.Zero,
	}

	for _, s := range selected {
		if s.Quantity < 1 {
			return Quote{}, errors.NewAppError(errors.ErrCodeInvalidAmount,
				fmt.Sprintf("Số lượng dịch vụ %s phải lớn hơn 0", s.Service.Name), nil)
		}
		if s.Service.Price.IsNegative() {
			return Quote{}, errors.NewAppError(errors.ErrCodeInvalidAmount,
				fmt.Sprintf("Giá dịch vụ %s không được âm", s.Service.Name), nil)
		}
		lineTotal := s.Service.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
		quote.ServiceLines = append(quote.ServiceLines, ServiceLine{
			ServiceID: s.Service.ID,
			Name:      s.Service.Name,
			UnitPrice: s.Service.Price,
			Quantity:  s.Quantity,
			LineTotal: lineTotal,
		})
		quote.ServicesTotal = quote.ServicesTotal.Add(lineTotal)
	}

	quote.GrandTotal = quote.RoomTotal.Add(quote.ServicesTotal)
	return quote, nil
}

// QuoteStay báo giá theo ngày nhận/trả phòng, số đêm tính theo ngày lịch
func QuoteStay(checkIn, checkOut time.Time, pricePerNight decimal.Decimal, selected []models.SelectedService) (Quote, error) {
	nights := DaysBetween(checkIn, checkOut)
	if nights < 0 {
		nights = 0
	}
	return ComputeTotal(nights, pricePerNight, selected)
}
