package repository

import (
	"context"
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) WithTx(tx *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: tx}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *model.QuizAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

func (r *AttemptRepository) List(ctx context.Context) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).Order("completed_at desc, id desc").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByStudent(ctx context.Context, studentName string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).Where("student_name = ?", studentName).
		Order("completed_at desc, id desc").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByQuizID(ctx context.Context, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).Where("quiz_id = ?", quizID).
		Order("completed_at asc, id asc").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ExistsByQuizAndStudent(ctx context.Context, quizID uint, studentName string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Where("quiz_id = ? AND student_name = ?", quizID, studentName).
		Count(&count).Error
	return count > 0, err
}

func (r *AttemptRepository) DeleteByQuizID(ctx context.Context, quizID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("quiz_id = ?", quizID).Delete(&model.QuizAttempt{})
	return res.RowsAffected, res.Error
}
