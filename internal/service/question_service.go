package service

import (
	"context"
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"
	"quizmaster_backend/pkg/monitoring"
	"strings"

	"gorm.io/gorm"
)

type QuestionService struct {
	DB           *gorm.DB
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	OptionRepo   *repository.OptionRepository
	Policy       *PolicyStore
}

func NewQuestionService(
	db *gorm.DB,
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	optionRepo *repository.OptionRepository,
	policy *PolicyStore,
) *QuestionService {
	return &QuestionService{
		DB:           db,
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		OptionRepo:   optionRepo,
		Policy:       policy,
	}
}

type OptionRequest struct {
	OptionText string `json:"optionText"`
	IsCorrect  bool   `json:"isCorrect"`
}

type QuestionRequest struct {
	QuestionText string          `json:"questionText"`
	QuestionType string          `json:"questionType"`
	Options      []OptionRequest `json:"options"`
}

// AddQuestion 题目与选项作为一个整体写入，校验失败时不落任何数据
func (s *QuestionService) AddQuestion(ctx context.Context, quizID uint, req QuestionRequest) (*model.Question, error) {
	var question *model.Question
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.QuizRepo.WithTx(tx).Exists(ctx, quizID)
		if err != nil {
			return err
		}
		if !exists {
			return util.NewNotFound("Quiz")
		}

		if err := s.Policy.Get().ValidateQuestion(req); err != nil {
			monitoring.ValidationFailures.WithLabelValues("add_question").Inc()
			return err
		}

		q := &model.Question{
			QuizID:       quizID,
			QuestionText: strings.TrimSpace(req.QuestionText),
			QuestionType: strings.TrimSpace(req.QuestionType),
		}
		if err := s.QuestionRepo.WithTx(tx).Create(ctx, q); err != nil {
			return err
		}

		options, err := s.insertOptions(ctx, tx, q.ID, req.Options)
		if err != nil {
			return err
		}
		q.Options = options
		question = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion 整体替换选项集合
func (s *QuestionService) UpdateQuestion(ctx context.Context, id uint, req QuestionRequest) (*model.Question, error) {
	var question *model.Question
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := s.QuestionRepo.WithTx(tx)

		q, err := questions.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "Question")
		}

		if err := s.Policy.Get().ValidateQuestion(req); err != nil {
			monitoring.ValidationFailures.WithLabelValues("update_question").Inc()
			return err
		}

		q.QuestionText = strings.TrimSpace(req.QuestionText)
		q.QuestionType = strings.TrimSpace(req.QuestionType)
		if err := questions.Update(ctx, q); err != nil {
			return err
		}

		if _, err := s.OptionRepo.WithTx(tx).DeleteByQuestionID(ctx, q.ID); err != nil {
			return err
		}
		options, err := s.insertOptions(ctx, tx, q.ID, req.Options)
		if err != nil {
			return err
		}
		q.Options = options
		question = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := s.QuestionRepo.WithTx(tx)
		if _, err := questions.FindByID(ctx, id); err != nil {
			return notFoundOr(err, "Question")
		}
		if _, err := s.OptionRepo.WithTx(tx).DeleteByQuestionID(ctx, id); err != nil {
			return err
		}
		return questions.Delete(ctx, id)
	})
}

func (s *QuestionService) ListQuestions(ctx context.Context, quizID uint) ([]model.Question, error) {
	exists, err := s.QuizRepo.Exists(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.NewNotFound("Quiz")
	}
	return loadQuestionTree(ctx, s.QuestionRepo, s.OptionRepo, quizID)
}

func (s *QuestionService) insertOptions(ctx context.Context, tx *gorm.DB, questionID uint, reqs []OptionRequest) ([]model.Option, error) {
	options := make([]model.Option, len(reqs))
	for i, o := range reqs {
		options[i] = model.Option{
			QuestionID: questionID,
			OptionText: strings.TrimSpace(o.OptionText),
			IsCorrect:  o.IsCorrect,
		}
	}
	if err := s.OptionRepo.WithTx(tx).CreateBatch(ctx, options); err != nil {
		return nil, err
	}
	return options, nil
}
