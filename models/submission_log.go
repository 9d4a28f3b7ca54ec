package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Submission outcomes
const (
	SubmissionConfirmed = "confirmed"
	SubmissionFailed    = "failed"
	SubmissionRejected  = "rejected" // bị chặn bởi kiểm tra phía web, chưa gửi lên API
)

// SubmissionLog nhật ký mỗi lần gửi đặt phòng/sửa đặt phòng lên API
type SubmissionLog struct {
	ID            uint                            `json:"id" gorm:"primaryKey"`
	FormID        string                          `json:"formId" gorm:"index;size:64"`
	SessionID     string                          `json:"sessionId" gorm:"size:64"`
	UserID        string                          `json:"userId" gorm:"index;size:64"`
	Action        string                          `json:"action" gorm:"size:16"` // create, update, status
	HotelID       string                          `json:"hotelId" gorm:"size:64"`
	RoomID        string                          `json:"roomId" gorm:"index;size:64"`
	ReservationID string                          `json:"reservationId" gorm:"size:64"`
	CheckInDate   time.Time                       `json:"checkInDate"`
	CheckOutDate  time.Time                       `json:"checkOutDate"`
	Nights        int                             `json:"nights"`
	ServiceIDs    pq.StringArray                  `json:"serviceIds" gorm:"type:text[]"`
	Services      datatypes.JSONSlice[ServiceRef] `json:"services" gorm:"type:jsonb"`
	GrandTotal    decimal.Decimal                 `json:"grandTotal" gorm:"type:numeric(14,2)"`
	Outcome       string                          `json:"outcome" gorm:"size:16"`
	Error         string                          `json:"error,omitempty"`
	CreatedAt     time.Time                       `json:"createdAt" gorm:"autoCreateTime"`
}
