package service

import (
	"testing"
	"time"

	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/testutil"

	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type testServices struct {
	db       *gorm.DB
	repos    testRepos
	quiz     *QuizService
	question *QuestionService
	attempt  *AttemptService
	retake   *RetakeService
}

type testRepos struct {
	quiz       *repository.QuizRepository
	question   *repository.QuestionRepository
	option     *repository.OptionRepository
	attempt    *repository.AttemptRepository
	permission *repository.RetakePermissionRepository
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := testutil.NewTestDB(t)

	repos := testRepos{
		quiz:       repository.NewQuizRepository(db),
		question:   repository.NewQuestionRepository(db),
		option:     repository.NewOptionRepository(db),
		attempt:    repository.NewAttemptRepository(db),
		permission: repository.NewRetakePermissionRepository(db),
	}
	policy := NewPolicyStore(DefaultQuizPolicy())

	ts := &testServices{
		db:       db,
		repos:    repos,
		quiz:     NewQuizService(db, repos.quiz, repos.question, repos.option, repos.attempt, policy),
		question: NewQuestionService(db, repos.quiz, repos.question, repos.option, policy),
		attempt:  NewAttemptService(db, repos.attempt, repos.permission),
		retake:   NewRetakeService(repos.permission),
	}
	ts.quiz.Now = fixedClock
	ts.attempt.Now = fixedClock
	ts.retake.Now = fixedClock
	return ts
}

func validQuestion(text string) QuestionRequest {
	return QuestionRequest{
		QuestionText: text,
		QuestionType: "MULTIPLE_CHOICE",
		Options: []OptionRequest{
			{OptionText: "right", IsCorrect: true},
			{OptionText: "wrong", IsCorrect: false},
		},
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func uintPtr(v uint) *uint { return &v }
