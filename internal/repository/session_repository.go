package repository

import (
	"context"
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.UserSession) error {
	return r.DB.WithContext(ctx).Create(session).Error
}

func (r *SessionRepository) FindActiveByToken(ctx context.Context, token string) (*model.UserSession, error) {
	var s model.UserSession
	err := r.DB.WithContext(ctx).Where("session_token = ? AND active = ?", token, true).First(&s).Error
	return &s, err
}

func (r *SessionRepository) Deactivate(ctx context.Context, token string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.UserSession{}).
		Where("session_token = ? AND active = ?", token, true).
		Update("active", false)
	return res.RowsAffected, res.Error
}
