package repository

import (
	"context"
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type EmailLogRepository struct {
	DB *gorm.DB
}

func NewEmailLogRepository(db *gorm.DB) *EmailLogRepository {
	return &EmailLogRepository{DB: db}
}

func (r *EmailLogRepository) WithTx(tx *gorm.DB) *EmailLogRepository {
	return &EmailLogRepository{DB: tx}
}

func (r *EmailLogRepository) Create(ctx context.Context, entry *model.EmailLog) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *EmailLogRepository) CountSentByType(ctx context.Context, emailType string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.EmailLog{}).
		Where("type = ? AND status = ?", emailType, model.EmailStatusSent).
		Count(&count).Error
	return count, err
}

func (r *EmailLogRepository) CountSent(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.EmailLog{}).
		Where("status = ?", model.EmailStatusSent).
		Count(&count).Error
	return count, err
}

func (r *EmailLogRepository) RecentByType(ctx context.Context, emailType string, limit int) ([]model.EmailLog, error) {
	var logs []model.EmailLog
	err := r.DB.WithContext(ctx).Where("type = ?", emailType).
		Order("timestamp desc, id desc").Limit(limit).Find(&logs).Error
	return logs, err
}
