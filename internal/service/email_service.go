package service

import (
	"context"
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"
	"quizmaster_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const recentEmailLimit = 10

// EmailService 只记录邮件发送日志，不负责真正投递
type EmailService struct {
	DB           *gorm.DB
	EmailLogRepo *repository.EmailLogRepository
	StudentRepo  *repository.StudentRepository
	QuizRepo     *repository.QuizRepository
	Now          func() time.Time
}

func NewEmailService(db *gorm.DB, emailLogRepo *repository.EmailLogRepository, studentRepo *repository.StudentRepository, quizRepo *repository.QuizRepository) *EmailService {
	return &EmailService{
		DB:           db,
		EmailLogRepo: emailLogRepo,
		StudentRepo:  studentRepo,
		QuizRepo:     quizRepo,
		Now:          time.Now,
	}
}

type EmailStats struct {
	RemindersSent   int64            `json:"remindersSent"`
	ResultsSent     int64            `json:"resultsSent"`
	ActiveStudents  int64            `json:"activeStudents"`
	TotalEmailsSent int64            `json:"totalEmailsSent"`
	RecentReminders []model.EmailLog `json:"recentReminders"`
	RecentResults   []model.EmailLog `json:"recentResults"`
}

type EmailLogRequest struct {
	Email        string `json:"email"`
	Type         string `json:"type"`
	QuizID       *uint  `json:"quizId"`
	QuizTitle    string `json:"quizTitle"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage"`
}

type LogResultRequest struct {
	Email     string `json:"email"`
	QuizID    uint   `json:"quizId"`
	QuizTitle string `json:"quizTitle"`
}

type ReminderResult struct {
	QuizID   uint     `json:"quizId"`
	Count    int      `json:"count"`
	Students []string `json:"students"`
}

// Stats 六项统计互不依赖，并发查询
func (s *EmailService) Stats(ctx context.Context) (*EmailStats, error) {
	var stats EmailStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.RemindersSent, err = s.EmailLogRepo.CountSentByType(gctx, model.EmailTypeReminder)
		return err
	})
	g.Go(func() (err error) {
		stats.ResultsSent, err = s.EmailLogRepo.CountSentByType(gctx, model.EmailTypeResults)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveStudents, err = s.StudentRepo.CountActive(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalEmailsSent, err = s.EmailLogRepo.CountSent(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentReminders, err = s.EmailLogRepo.RecentByType(gctx, model.EmailTypeReminder, recentEmailLimit)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentResults, err = s.EmailLogRepo.RecentByType(gctx, model.EmailTypeResults, recentEmailLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if stats.RecentReminders == nil {
		stats.RecentReminders = []model.EmailLog{}
	}
	if stats.RecentResults == nil {
		stats.RecentResults = []model.EmailLog{}
	}
	return &stats, nil
}

func (s *EmailService) Log(ctx context.Context, req EmailLogRequest) (*model.EmailLog, error) {
	var errs []string
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, "Email is required")
	}
	if req.Type != model.EmailTypeReminder && req.Type != model.EmailTypeResults {
		errs = append(errs, "Type must be reminder or results")
	}
	status := req.Status
	if status == "" {
		status = model.EmailStatusSent
	}
	if status != model.EmailStatusSent && status != model.EmailStatusFailed {
		errs = append(errs, "Status must be sent or failed")
	}
	if len(errs) > 0 {
		return nil, util.NewValidation(errs...)
	}

	entry := &model.EmailLog{
		Email:        strings.TrimSpace(req.Email),
		Type:         req.Type,
		QuizID:       req.QuizID,
		QuizTitle:    req.QuizTitle,
		Status:       status,
		Timestamp:    s.Now(),
		ErrorMessage: req.ErrorMessage,
	}
	if err := s.EmailLogRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// SendReminders 为每个有邮箱的在读学生记录一条提醒
func (s *EmailService) SendReminders(ctx context.Context, quizID uint) (*ReminderResult, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		return nil, notFoundOr(err, "Quiz")
	}

	students, err := s.StudentRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &ReminderResult{QuizID: quiz.ID, Students: []string{}}
	now := s.Now()
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		logs := s.EmailLogRepo.WithTx(tx)
		for _, st := range students {
			if strings.TrimSpace(st.Email) == "" {
				continue
			}
			id := quiz.ID
			entry := &model.EmailLog{
				Email:     st.Email,
				Type:      model.EmailTypeReminder,
				QuizID:    &id,
				QuizTitle: quiz.Title,
				Status:    model.EmailStatusSent,
				Timestamp: now,
			}
			if err := logs.Create(ctx, entry); err != nil {
				return err
			}
			result.Students = append(result.Students, st.Username)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Count = len(result.Students)
	logger.Log.Info("Quiz reminders logged", zap.Uint("quiz_id", quiz.ID), zap.Int("count", result.Count))
	return result, nil
}

func (s *EmailService) LogResult(ctx context.Context, req LogResultRequest) (*model.EmailLog, error) {
	var quizID *uint
	if req.QuizID != 0 {
		id := req.QuizID
		quizID = &id
	}
	return s.Log(ctx, EmailLogRequest{
		Email:     req.Email,
		Type:      model.EmailTypeResults,
		QuizID:    quizID,
		QuizTitle: req.QuizTitle,
		Status:    model.EmailStatusSent,
	})
}
