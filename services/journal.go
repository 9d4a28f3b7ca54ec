package services

import (
	"context"

	"hotelbooking/models"
	"hotelbooking/services/logger"

	"gorm.io/gorm"
)

// Journal ghi nhận mỗi lần gửi đặt phòng
type Journal interface {
	Record(ctx context.Context, entry *models.SubmissionLog) error
}

// SubmissionJournal lưu nhật ký vào Postgres qua gorm. db == nil thì chỉ ghi log.
type SubmissionJournal struct {
	db     *gorm.DB
	logger logger.Logger
}

// JournalFilter điều kiện lọc nhật ký
type JournalFilter struct {
	Outcome string
	UserID  string
	RoomID  string
	Page    int
	Limit   int
}

func NewSubmissionJournal(db *gorm.DB, log logger.Logger) *SubmissionJournal {
	if log == nil {
		log = logger.Discard
	}
	return &SubmissionJournal{db: db, logger: log}
}

// Enabled có kết nối database
func (j *SubmissionJournal) Enabled() bool {
	return j != nil && j.db != nil
}

func (j *SubmissionJournal) Migrate() error {
	if !j.Enabled() {
		return nil
	}
	return j.db.AutoMigrate(&models.SubmissionLog{})
}

func (j *SubmissionJournal) Record(ctx context.Context, entry *models.SubmissionLog) error {
	j.logger.Info("submission form=%s action=%s room=%s outcome=%s reservation=%s",
		entry.FormID, entry.Action, entry.RoomID, entry.Outcome, entry.ReservationID)
	if !j.Enabled() {
		return nil
	}
	return j.db.WithContext(ctx).Create(entry).Error
}

// List trả về nhật ký mới nhất trước cùng tổng số bản ghi
func (j *SubmissionJournal) List(ctx context.Context, filter JournalFilter) ([]models.SubmissionLog, int64, error) {
	if !j.Enabled() {
		return []models.SubmissionLog{}, 0, nil
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	query := j.db.WithContext(ctx).Model(&models.SubmissionLog{})
	if filter.Outcome != "" {
		query = query.Where("outcome = ?", filter.Outcome)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.RoomID != "" {
		query = query.Where("room_id = ?", filter.RoomID)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.SubmissionLog
	err := query.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
