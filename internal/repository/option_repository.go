package repository

import (
	"context"
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type OptionRepository struct {
	DB *gorm.DB
}

func NewOptionRepository(db *gorm.DB) *OptionRepository {
	return &OptionRepository{DB: db}
}

func (r *OptionRepository) WithTx(tx *gorm.DB) *OptionRepository {
	return &OptionRepository{DB: tx}
}

// CreateBatch 按传入顺序插入，主键回填到切片元素
func (r *OptionRepository) CreateBatch(ctx context.Context, options []model.Option) error {
	if len(options) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&options).Error
}

func (r *OptionRepository) ListByQuestionIDs(ctx context.Context, questionIDs []uint) ([]model.Option, error) {
	var opts []model.Option
	if len(questionIDs) == 0 {
		return opts, nil
	}
	err := r.DB.WithContext(ctx).Where("question_id IN ?", questionIDs).Order("id asc").Find(&opts).Error
	return opts, err
}

func (r *OptionRepository) DeleteByQuestionID(ctx context.Context, questionID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("question_id = ?", questionID).Delete(&model.Option{})
	return res.RowsAffected, res.Error
}
