package models

import (
	"time"
)

// Reservation status
const (
	ReservationStatusActive    = "active"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

type Reservation struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user"`
	HotelID      string       `json:"hotel"`
	RoomID       string       `json:"room"`
	CheckInDate  time.Time    `json:"checkInDate"`
	CheckOutDate time.Time    `json:"checkOutDate"`
	Guests       int          `json:"guests"`
	Services     []ServiceRef `json:"services"`
	Status       string       `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`

	// DatesUnreadable hotel API trả ngày không đọc được, không biết khoảng phòng bị giữ
	DatesUnreadable bool `json:"-"`
}

// Stay khoảng lưu trú [checkIn, checkOut)
func (r *Reservation) Stay() DateRange {
	return NewDateRange(r.CheckInDate, r.CheckOutDate)
}

// IsActive reservation đang giữ phòng
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusActive
}

// ValidStatus kiểm tra giá trị status
func ValidStatus(status string) bool {
	switch status {
	case ReservationStatusActive, ReservationStatusCompleted, ReservationStatusCancelled:
		return true
	}
	return false
}
