package dto

import (
	"time"

	"hotelbooking/models"
	"hotelbooking/services"
	"hotelbooking/services/availability"
)

// ReservationResponse là DTO cho response của reservation
type ReservationResponse struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user"`
	HotelID      string             `json:"hotel"`
	RoomID       string             `json:"room"`
	CheckInDate  string             `json:"checkInDate"`
	CheckOutDate string             `json:"checkOutDate"`
	Nights       int                `json:"nights"`
	Guests       int                `json:"guests"`
	Services     []ServiceSelection `json:"services"`
	Status       string             `json:"status"`
	CreatedAt    *time.Time         `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time         `json:"updatedAt,omitempty"`
}

func NewReservationResponse(r models.Reservation) ReservationResponse {
	out := ReservationResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		HotelID:      r.HotelID,
		RoomID:       r.RoomID,
		CheckInDate:  r.CheckInDate.Format(availability.DateLayout),
		CheckOutDate: r.CheckOutDate.Format(availability.DateLayout),
		Nights:       availability.DaysBetween(r.CheckInDate, r.CheckOutDate),
		Guests:       r.Guests,
		Services:     fromServiceRefs(r.Services),
		Status:       r.Status,
	}
	if !r.CreatedAt.IsZero() {
		out.CreatedAt = &r.CreatedAt
	}
	if !r.UpdatedAt.IsZero() {
		out.UpdatedAt = &r.UpdatedAt
	}
	return out
}

func NewReservationList(list []models.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(list))
	for i, r := range list {
		out[i] = NewReservationResponse(r)
	}
	return out
}

// ReservationQuery lọc danh sách đặt phòng của tôi
type ReservationQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=active completed cancelled"`
}

// EditReservationRequest là DTO cho request sửa reservation, trường nil giữ nguyên
type EditReservationRequest struct {
	CheckIn  *string             `json:"checkIn" binding:"omitempty,isodate"`
	CheckOut *string             `json:"checkOut" binding:"omitempty,isodate"`
	Guests   *int                `json:"guests" binding:"omitempty,min=1,max=50"`
	Services *[]ServiceSelection `json:"services" binding:"omitempty,dive"`
}

func (r EditReservationRequest) ToInput(loc *time.Location) (services.EditInput, error) {
	var in services.EditInput
	if r.CheckIn != nil {
		d, err := parseDay(*r.CheckIn, loc)
		if err != nil {
			return in, err
		}
		in.CheckIn = &d
	}
	if r.CheckOut != nil {
		d, err := parseDay(*r.CheckOut, loc)
		if err != nil {
			return in, err
		}
		in.CheckOut = &d
	}
	in.Guests = r.Guests
	if r.Services != nil {
		in.Services = toServiceRefs(*r.Services)
	}
	return in, nil
}

// EditReservationResponse reservation sau khi sửa kèm báo giá mới
type EditReservationResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Quote       *QuoteResponse      `json:"quote,omitempty"`
}

// UpdateReservationStatusRequest là DTO cho request đổi trạng thái reservation
type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled"`
}

// StatusChangeResponse kết quả đổi trạng thái, notice là cảnh báo hủy sát ngày
type StatusChangeResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Notice      string              `json:"notice,omitempty"`
}

// SubmissionLogResponse một dòng nhật ký gửi đặt phòng
type SubmissionLogResponse struct {
	ID            uint               `json:"id"`
	FormID        string             `json:"formId"`
	UserID        string             `json:"userId"`
	Action        string             `json:"action"`
	RoomID        string             `json:"roomId"`
	ReservationID string             `json:"reservationId,omitempty"`
	CheckInDate   string             `json:"checkInDate"`
	CheckOutDate  string             `json:"checkOutDate"`
	Nights        int                `json:"nights"`
	ServiceIDs    []string           `json:"serviceIds"`
	Services      []ServiceSelection `json:"services"`
	GrandTotal    string             `json:"grandTotal"`
	Outcome       string             `json:"outcome"`
	Error         string             `json:"error,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func NewSubmissionLogResponse(l models.SubmissionLog) SubmissionLogResponse {
	ids := []string(l.ServiceIDs)
	if ids == nil {
		ids = []string{}
	}
	return SubmissionLogResponse{
		ID:            l.ID,
		FormID:        l.FormID,
		UserID:        l.UserID,
		Action:        l.Action,
		RoomID:        l.RoomID,
		ReservationID: l.ReservationID,
		CheckInDate:   l.CheckInDate.Format(availability.DateLayout),
		CheckOutDate:  l.CheckOutDate.Format(availability.DateLayout),
		Nights:        l.Nights,
		ServiceIDs:    ids,
		Services:      fromServiceRefs([]models.ServiceRef(l.Services)),
		GrandTotal:    l.GrandTotal.StringFixed(2),
		Outcome:       l.Outcome,
		Error:         l.Error,
		CreatedAt:     l.CreatedAt,
	}
}

// SubmissionQuery lọc nhật ký
type SubmissionQuery struct {
	PageQuery
	Outcome string `form:"outcome" binding:"omitempty,oneof=confirmed failed rejected"`
	UserID  string `form:"userId"`
	RoomID  string `form:"roomId"`
}
