package repository

import (
	"context"
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.DB.WithContext(ctx).Create(student).Error
}

func (r *StudentRepository) FindByID(ctx context.Context, id uint) (*model.Student, error) {
	var s model.Student
	err := r.DB.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *StudentRepository) FindByUsername(ctx context.Context, username string) (*model.Student, error) {
	var s model.Student
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&s).Error
	return &s, err
}

func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	var ss []model.Student
	err := r.DB.WithContext(ctx).Order("id asc").Find(&ss).Error
	return ss, err
}

func (r *StudentRepository) ListActive(ctx context.Context) ([]model.Student, error) {
	var ss []model.Student
	err := r.DB.WithContext(ctx).Where("active = ? AND deleted = ?", true, false).Order("id asc").Find(&ss).Error
	return ss, err
}

func (r *StudentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Student{}).Where("active = ? AND deleted = ?", true, false).Count(&count).Error
	return count, err
}

func (r *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	return r.DB.WithContext(ctx).Save(student).Error
}
