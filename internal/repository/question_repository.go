package repository

import (
	"context"
	"quizmaster_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) WithTx(tx *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: tx}
}

func (r *QuestionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.DB.WithContext(ctx).Create(question).Error
}

func (r *QuestionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.WithContext(ctx).First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) ListByQuizID(ctx context.Context, quizID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.WithContext(ctx).Where("quiz_id = ?", quizID).Order("id asc").Find(&qs).Error
	return qs, err
}

// Update 只更新题目本身的字段，选项由 OptionRepository 维护
func (r *QuestionRepository) Update(ctx context.Context, question *model.Question) error {
	return r.DB.WithContext(ctx).Model(&model.Question{}).
		Where("id = ?", question.ID).
		Updates(map[string]interface{}{
			"question_text": question.QuestionText,
			"question_type": question.QuestionType,
		}).Error
}

func (r *QuestionRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) DeleteByQuizID(ctx context.Context, quizID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("quiz_id = ?", quizID).Delete(&model.Question{})
	return res.RowsAffected, res.Error
}
