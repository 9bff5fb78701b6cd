package service

import (
	"context"
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"
	"quizmaster_backend/pkg/monitoring"
	"quizmaster_backend/pkg/tracing"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type AttemptService struct {
	DB             *gorm.DB
	AttemptRepo    *repository.AttemptRepository
	PermissionRepo *repository.RetakePermissionRepository
	Now            func() time.Time
}

func NewAttemptService(db *gorm.DB, attemptRepo *repository.AttemptRepository, permissionRepo *repository.RetakePermissionRepository) *AttemptService {
	return &AttemptService{
		DB:             db,
		AttemptRepo:    attemptRepo,
		PermissionRepo: permissionRepo,
		Now:            time.Now,
	}
}

type SubmitAttemptRequest struct {
	QuizID         uint   `json:"quizId"`
	QuizTitle      string `json:"quizTitle"`
	StudentName    string `json:"studentName"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	TimeTaken      int    `json:"timeTaken"`
}

func (r SubmitAttemptRequest) validate() error {
	var errs []string
	if r.QuizID == 0 {
		errs = append(errs, "Quiz id is required")
	}
	if strings.TrimSpace(r.QuizTitle) == "" {
		errs = append(errs, "Quiz title is required")
	}
	if strings.TrimSpace(r.StudentName) == "" {
		errs = append(errs, "Student name is required")
	}
	if r.Score < 0 || r.TotalQuestions < 0 || r.TimeTaken < 0 {
		errs = append(errs, "Score, total questions and time taken must not be negative")
	} else if r.Score > r.TotalQuestions {
		errs = append(errs, "Score must not exceed total questions")
	}
	if len(errs) > 0 {
		return util.NewValidation(errs...)
	}
	return nil
}

// SubmitAttempt 写入成绩并在同一事务内关闭匹配的重测授权
func (s *AttemptService) SubmitAttempt(ctx context.Context, req SubmitAttemptRequest) (*model.QuizAttempt, error) {
	ctx, span := tracing.StartSpan(ctx, "AttemptService.SubmitAttempt")
	defer span.End()

	if err := req.validate(); err != nil {
		monitoring.ValidationFailures.WithLabelValues("submit_attempt").Inc()
		return nil, err
	}

	now := s.Now()
	attempt := &model.QuizAttempt{
		QuizID:         req.QuizID,
		QuizTitle:      strings.TrimSpace(req.QuizTitle),
		StudentName:    strings.TrimSpace(req.StudentName),
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		TimeTaken:      req.TimeTaken,
		CompletedAt:    now,
		CreatedAt:      now,
	}

	var deactivated int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.AttemptRepo.WithTx(tx).Create(ctx, attempt); err != nil {
			return err
		}
		n, err := reconcileRetakes(ctx, s.PermissionRepo.WithTx(tx), attempt.StudentName, attempt.QuizID, attempt.QuizTitle)
		if err != nil {
			return err
		}
		deactivated = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("quiz.id", int64(attempt.QuizID)),
		attribute.Int("retake.deactivated", deactivated),
	)
	monitoring.AttemptsRecorded.Inc()
	return attempt, nil
}

func (s *AttemptService) ListAttempts(ctx context.Context) ([]model.QuizAttempt, error) {
	return nonNilAttempts(s.AttemptRepo.List(ctx))
}

func (s *AttemptService) ListAttemptsByStudent(ctx context.Context, studentName string) ([]model.QuizAttempt, error) {
	return nonNilAttempts(s.AttemptRepo.ListByStudent(ctx, studentName))
}

func (s *AttemptService) ListAttemptsByQuiz(ctx context.Context, quizID uint) ([]model.QuizAttempt, error) {
	return nonNilAttempts(s.AttemptRepo.ListByQuizID(ctx, quizID))
}

func nonNilAttempts(attempts []model.QuizAttempt, err error) ([]model.QuizAttempt, error) {
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []model.QuizAttempt{}
	}
	return attempts, nil
}
