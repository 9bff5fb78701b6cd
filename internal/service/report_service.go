package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"
	"quizmaster_backend/pkg/logger"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type ReportService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
	Storage     *StorageService
	Now         func() time.Time
}

func NewReportService(quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository, storage *StorageService) *ReportService {
	return &ReportService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		Storage:     storage,
		Now:         time.Now,
	}
}

type AttemptReport struct {
	QuizID   uint   `json:"quizId"`
	Attempts int    `json:"attempts"`
	URL      string `json:"url"`
}

var attemptReportHeader = []string{"id", "student_name", "quiz_title", "score", "total_questions", "time_taken", "completed_at"}

// ExportAttempts 生成测验成绩 CSV 并上传
func (s *ReportService) ExportAttempts(ctx context.Context, quizID uint) (*AttemptReport, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		return nil, notFoundOr(err, "Quiz")
	}

	attempts, err := s.AttemptRepo.ListByQuizID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	data, err := renderAttemptsCSV(attempts)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("reports/quiz-%d-%s.csv", quiz.ID, s.Now().Format("20060102150405"))
	url, err := s.Storage.Upload(ctx, objectName, bytes.NewReader(data), int64(len(data)), util.MimeCSV)
	if err != nil {
		return nil, fmt.Errorf("upload attempt report: %w", err)
	}

	logger.Log.Info("Attempt report exported",
		zap.Uint("quiz_id", quiz.ID),
		zap.Int("attempts", len(attempts)),
		zap.String("object", objectName),
	)
	return &AttemptReport{QuizID: quiz.ID, Attempts: len(attempts), URL: url}, nil
}

func renderAttemptsCSV(attempts []model.QuizAttempt) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(attemptReportHeader); err != nil {
		return nil, err
	}
	for _, a := range attempts {
		row := []string{
			strconv.FormatUint(uint64(a.ID), 10),
			a.StudentName,
			a.QuizTitle,
			strconv.Itoa(a.Score),
			strconv.Itoa(a.TotalQuestions),
			strconv.Itoa(a.TimeTaken),
			a.CompletedAt.Format(util.TimeFormat),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
