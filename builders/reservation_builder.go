package builders

import (
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/availability"
	"hotelbooking/services/hotelapi"
)

// ReservationBuilder giúp tạo payload reservation theo từng bước
type ReservationBuilder struct {
	payload hotelapi.ReservationPayload
}

// NewReservationBuilder tạo instance mới của ReservationBuilder
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		payload: hotelapi.ReservationPayload{Guests: 1, Services: []models.ServiceRef{}},
	}
}

// FromReservation bắt đầu từ reservation có sẵn (dùng khi sửa)
func (b *ReservationBuilder) FromReservation(r models.Reservation) *ReservationBuilder {
	return b.WithUser(r.UserID).
		WithHotel(r.HotelID).
		WithRoom(r.RoomID).
		WithStay(r.CheckInDate, r.CheckOutDate).
		WithGuests(r.Guests).
		WithServiceRefs(r.Services)
}

// WithUser thêm thông tin user
func (b *ReservationBuilder) WithUser(userID string) *ReservationBuilder {
	b.payload.User = userID
	return b
}

func (b *ReservationBuilder) WithHotel(hotelID string) *ReservationBuilder {
	b.payload.Hotel = hotelID
	return b
}

// WithRoom thêm thông tin phòng
func (b *ReservationBuilder) WithRoom(roomID string) *ReservationBuilder {
	b.payload.Room = roomID
	return b
}

// WithStay thêm ngày nhận/trả phòng
func (b *ReservationBuilder) WithStay(checkIn, checkOut time.Time) *ReservationBuilder {
	b.payload.CheckInDate = availability.DateOf(checkIn).Format(availability.DateLayout)
	b.payload.CheckOutDate = availability.DateOf(checkOut).Format(availability.DateLayout)
	return b
}

func (b *ReservationBuilder) WithGuests(guests int) *ReservationBuilder {
	b.payload.Guests = guests
	return b
}

// WithServices thêm dịch vụ đã chọn
func (b *ReservationBuilder) WithServices(selected []models.SelectedService) *ReservationBuilder {
	refs := make([]models.ServiceRef, 0, len(selected))
	for _, s := range selected {
		refs = append(refs, models.ServiceRef{ServiceID: s.Service.ID, Quantity: s.Quantity})
	}
	b.payload.Services = refs
	return b
}

func (b *ReservationBuilder) WithServiceRefs(refs []models.ServiceRef) *ReservationBuilder {
	b.payload.Services = append([]models.ServiceRef{}, refs...)
	return b
}

// Build tạo payload hoàn chỉnh
func (b *ReservationBuilder) Build() (hotelapi.ReservationPayload, error) {
	required := map[string]string{
		"user":         b.payload.User,
		"hotel":        b.payload.Hotel,
		"room":         b.payload.Room,
		"checkInDate":  b.payload.CheckInDate,
		"checkOutDate": b.payload.CheckOutDate,
	}
	for _, field := range []string{"user", "hotel", "room", "checkInDate", "checkOutDate"} {
		if required[field] == "" {
			return hotelapi.ReservationPayload{}, errors.NewAppError(errors.ErrCodeRequiredField, "Thiếu trường "+field, errors.ErrMissingRequired)
		}
	}
	return b.payload, nil
}
