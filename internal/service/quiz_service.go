package service

import (
	"context"
	"errors"
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"
	"quizmaster_backend/pkg/logger"
	"quizmaster_backend/pkg/monitoring"
	"quizmaster_backend/pkg/tracing"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	DB           *gorm.DB
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	OptionRepo   *repository.OptionRepository
	AttemptRepo  *repository.AttemptRepository
	Policy       *PolicyStore
	Now          func() time.Time
}

func NewQuizService(
	db *gorm.DB,
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	optionRepo *repository.OptionRepository,
	attemptRepo *repository.AttemptRepository,
	policy *PolicyStore,
) *QuizService {
	return &QuizService{
		DB:           db,
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		OptionRepo:   optionRepo,
		AttemptRepo:  attemptRepo,
		Policy:       policy,
		Now:          time.Now,
	}
}

type QuizRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TimeLimit   int    `json:"timeLimit"`
}

func (s *QuizService) CreateQuiz(ctx context.Context, req QuizRequest) (*model.Quiz, error) {
	if err := s.Policy.Get().ValidateQuiz(req.Title, req.Description, req.TimeLimit); err != nil {
		monitoring.ValidationFailures.WithLabelValues("create_quiz").Inc()
		return nil, err
	}

	now := s.Now()
	quiz := &model.Quiz{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		TimeLimit:   req.TimeLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.QuizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) UpdateQuiz(ctx context.Context, id uint, req QuizRequest) (*model.Quiz, error) {
	var quiz *model.Quiz
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quizzes := s.QuizRepo.WithTx(tx)

		found, err := quizzes.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "Quiz")
		}

		if err := s.Policy.Get().ValidateQuiz(req.Title, req.Description, req.TimeLimit); err != nil {
			monitoring.ValidationFailures.WithLabelValues("update_quiz").Inc()
			return err
		}

		found.Title = strings.TrimSpace(req.Title)
		found.Description = req.Description
		found.TimeLimit = req.TimeLimit
		found.UpdatedAt = s.Now()
		if err := quizzes.Update(ctx, found); err != nil {
			return err
		}
		quiz = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Quiz")
	}
	return quiz, nil
}

func (s *QuizService) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	quizzes, err := s.QuizRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}
	return quizzes, nil
}

// GetQuizDetail 返回测验及全部题目、选项
func (s *QuizService) GetQuizDetail(ctx context.Context, id uint) (*model.QuizDetail, error) {
	quiz, err := s.GetQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	questions, err := loadQuestionTree(ctx, s.QuestionRepo, s.OptionRepo, id)
	if err != nil {
		return nil, err
	}
	return &model.QuizDetail{Quiz: *quiz, Questions: questions}, nil
}

func (s *QuizService) HasStudentTakenQuiz(ctx context.Context, quizID uint, studentName string) (bool, error) {
	return s.AttemptRepo.ExistsByQuizAndStudent(ctx, quizID, studentName)
}

// DeleteQuiz 在同一事务内按固定顺序删除：成绩 → 各题选项 → 题目 → 测验
func (s *QuizService) DeleteQuiz(ctx context.Context, id uint) error {
	ctx, span := tracing.StartSpan(ctx, "QuizService.DeleteQuiz")
	defer span.End()
	span.SetAttributes(attribute.Int64("quiz.id", int64(id)))

	var attempts, options, questions int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quizRepo := s.QuizRepo.WithTx(tx)
		questionRepo := s.QuestionRepo.WithTx(tx)
		optionRepo := s.OptionRepo.WithTx(tx)

		exists, err := quizRepo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return util.NewNotFound("Quiz")
		}

		if attempts, err = s.AttemptRepo.WithTx(tx).DeleteByQuizID(ctx, id); err != nil {
			return err
		}

		qs, err := questionRepo.ListByQuizID(ctx, id)
		if err != nil {
			return err
		}
		for _, q := range qs {
			n, err := optionRepo.DeleteByQuestionID(ctx, q.ID)
			if err != nil {
				return err
			}
			options += n
		}

		if questions, err = questionRepo.DeleteByQuizID(ctx, id); err != nil {
			return err
		}

		return quizRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	monitoring.QuizzesDeleted.Inc()
	logger.Log.Info("Quiz deleted",
		zap.Uint("quiz_id", id),
		zap.Int64("attempts", attempts),
		zap.Int64("questions", questions),
		zap.Int64("options", options),
	)
	return nil
}

// notFoundOr 把 gorm 的记录不存在转换为领域错误
func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NewNotFound(resource)
	}
	return err
}

func loadQuestionTree(ctx context.Context, questionRepo *repository.QuestionRepository, optionRepo *repository.OptionRepository, quizID uint) ([]model.Question, error) {
	questions, err := questionRepo.ListByQuizID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return []model.Question{}, nil
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	options, err := optionRepo.ListByQuestionIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[uint][]model.Option, len(questions))
	for _, opt := range options {
		byQuestion[opt.QuestionID] = append(byQuestion[opt.QuestionID], opt)
	}
	for i := range questions {
		questions[i].Options = byQuestion[questions[i].ID]
		if questions[i].Options == nil {
			questions[i].Options = []model.Option{}
		}
	}
	return questions, nil
}
