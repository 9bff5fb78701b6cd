package repository

import (
	"context"
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type RetakePermissionRepository struct {
	DB *gorm.DB
}

func NewRetakePermissionRepository(db *gorm.DB) *RetakePermissionRepository {
	return &RetakePermissionRepository{DB: db}
}

func (r *RetakePermissionRepository) WithTx(tx *gorm.DB) *RetakePermissionRepository {
	return &RetakePermissionRepository{DB: tx}
}

func (r *RetakePermissionRepository) Create(ctx context.Context, p *model.RetakePermission) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *RetakePermissionRepository) FindByID(ctx context.Context, id uint) (*model.RetakePermission, error) {
	var p model.RetakePermission
	err := r.DB.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *RetakePermissionRepository) ListActive(ctx context.Context) ([]model.RetakePermission, error) {
	var ps []model.RetakePermission
	err := r.DB.WithContext(ctx).Where("active = ?", true).Order("id asc").Find(&ps).Error
	return ps, err
}

func (r *RetakePermissionRepository) ListActiveByStudent(ctx context.Context, studentName string) ([]model.RetakePermission, error) {
	var ps []model.RetakePermission
	err := r.DB.WithContext(ctx).
		Where("student_name = ? AND active = ?", studentName, true).
		Order("id asc").Find(&ps).Error
	return ps, err
}

func (r *RetakePermissionRepository) ListActiveByStudentAndQuiz(ctx context.Context, studentName string, quizID uint) ([]model.RetakePermission, error) {
	var ps []model.RetakePermission
	err := r.DB.WithContext(ctx).
		Where("student_name = ? AND quiz_id = ? AND active = ?", studentName, quizID, true).
		Order("id asc").Find(&ps).Error
	return ps, err
}

// ListActiveByStudentAndTitle 旧授权没有 quiz_id，只能按标题匹配
func (r *RetakePermissionRepository) ListActiveByStudentAndTitle(ctx context.Context, studentName, quizTitle string) ([]model.RetakePermission, error) {
	var ps []model.RetakePermission
	err := r.DB.WithContext(ctx).
		Where("student_name = ? AND quiz_title = ? AND active = ?", studentName, quizTitle, true).
		Order("id asc").Find(&ps).Error
	return ps, err
}

func (r *RetakePermissionRepository) CountActiveByStudentAndQuiz(ctx context.Context, studentName string, quizID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.RetakePermission{}).
		Where("student_name = ? AND quiz_id = ? AND active = ?", studentName, quizID, true).
		Count(&count).Error
	return count, err
}

// Deactivate 只把仍处于激活状态的授权置为失效，返回受影响行数
func (r *RetakePermissionRepository) Deactivate(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.RetakePermission{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	return res.RowsAffected, res.Error
}
