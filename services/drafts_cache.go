package services

import (
	"context"
	"time"

	"hotelbooking/constants"
	"hotelbooking/models"

	"github.com/redis/go-redis/v9"
)

// BookingDraft lựa chọn dở dang trên form đặt phòng, lưu theo session + phòng
type BookingDraft struct {
	FormID    string              `json:"formId"`
	RoomID    string              `json:"roomId"`
	CheckIn   *time.Time          `json:"checkIn,omitempty"`
	CheckOut  *time.Time          `json:"checkOut,omitempty"`
	Guests    *int                `json:"guests,omitempty"`
	Services  []models.ServiceRef `json:"services,omitempty"`
	LastError string              `json:"lastError,omitempty"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func draftKey(sessionID, roomID string) string {
	return constants.CacheKeyDraft + sessionID + ":" + roomID
}

func SaveDraft(ctx context.Context, rdb *redis.Client, sessionID string, draft *BookingDraft) error {
	draft.UpdatedAt = time.Now()
	return SetToRedis(ctx, rdb, draftKey(sessionID, draft.RoomID), draft, constants.DraftTTL)
}

// GetDraft trả về nil khi chưa có draft
func GetDraft(ctx context.Context, rdb *redis.Client, sessionID, roomID string) (*BookingDraft, error) {
	var draft BookingDraft
	found, err := GetFromRedis(ctx, rdb, draftKey(sessionID, roomID), &draft)
	if err != nil || !found {
		return nil, err
	}
	return &draft, nil
}

func ClearDraft(ctx context.Context, rdb *redis.Client, sessionID, roomID string) error {
	return DeleteFromRedis(ctx, rdb, draftKey(sessionID, roomID))
}

// MergeDraft gộp draft cũ với phần cập nhật mới, trường nào mới để trống thì giữ giá trị cũ
func MergeDraft(old *BookingDraft, new *BookingDraft) *BookingDraft {
	if old == nil {
		return new
	}
	new.FormID = orString(new.FormID, old.FormID)
	new.RoomID = orString(new.RoomID, old.RoomID)
	new.Guests = orIntPointer(new.Guests, old.Guests)
	if new.Services == nil {
		new.Services = old.Services
	}

	// Người dùng chọn lại ngày nhận phòng sau ngày trả phòng cũ thì bỏ ngày trả phòng cũ
	if new.CheckIn != nil && new.CheckOut == nil && old.CheckOut != nil && !old.CheckOut.After(*new.CheckIn) {
		new.CheckOut = nil
	} else {
		new.CheckOut = orTimePointer(new.CheckOut, old.CheckOut)
	}

	if new.CheckOut != nil && new.CheckIn == nil && old.CheckIn != nil && !new.CheckOut.After(*old.CheckIn) {
		new.CheckIn = nil
	} else {
		new.CheckIn = orTimePointer(new.CheckIn, old.CheckIn)
	}
	return new
}

func orString(newVal, oldVal string) string {
	if newVal != "" {
		return newVal
	}
	return oldVal
}

func orIntPointer(newVal, oldVal *int) *int {
	if newVal != nil {
		return newVal
	}
	return oldVal
}

func orTimePointer(newVal, oldVal *time.Time) *time.Time {
	if newVal != nil {
		return newVal
	}
	return oldVal
}
