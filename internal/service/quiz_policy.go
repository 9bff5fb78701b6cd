package service

import (
	"fmt"
	"quizmaster_backend/internal/config"
	"quizmaster_backend/internal/util"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

// QuizPolicy 测验与题目的字段约束
type QuizPolicy struct {
	TitleMinLength       int
	TitleMaxLength       int
	DescriptionMaxLength int
	MaxTimeLimit         int
	MinOptions           int
}

func DefaultQuizPolicy() QuizPolicy {
	return QuizPolicy{
		TitleMinLength:       3,
		TitleMaxLength:       100,
		DescriptionMaxLength: 500,
		MaxTimeLimit:         180,
		MinOptions:           1,
	}
}

func PolicyFromConfig(cfg config.QuizConfig) QuizPolicy {
	p := DefaultQuizPolicy()
	if cfg.TitleMinLength > 0 {
		p.TitleMinLength = cfg.TitleMinLength
	}
	if cfg.TitleMaxLength > 0 {
		p.TitleMaxLength = cfg.TitleMaxLength
	}
	if cfg.DescriptionMaxLength > 0 {
		p.DescriptionMaxLength = cfg.DescriptionMaxLength
	}
	if cfg.MaxTimeLimit > 0 {
		p.MaxTimeLimit = cfg.MaxTimeLimit
	}
	if cfg.MinOptions > 0 {
		p.MinOptions = cfg.MinOptions
	}
	return p
}

// PolicyStore 支持配置热更新，读写无锁
type PolicyStore struct {
	current atomic.Pointer[QuizPolicy]
}

func NewPolicyStore(p QuizPolicy) *PolicyStore {
	s := &PolicyStore{}
	s.Set(p)
	return s
}

func (s *PolicyStore) Get() QuizPolicy {
	if s == nil {
		return DefaultQuizPolicy()
	}
	return *s.current.Load()
}

func (s *PolicyStore) Set(p QuizPolicy) {
	s.current.Store(&p)
}

// ValidateQuiz 一次性收集全部违规字段
func (p QuizPolicy) ValidateQuiz(title, description string, timeLimit int) error {
	var errs []string

	titleLen := utf8.RuneCountInString(strings.TrimSpace(title))
	switch {
	case titleLen == 0:
		errs = append(errs, "Title is required")
	case titleLen < p.TitleMinLength || titleLen > p.TitleMaxLength:
		errs = append(errs, fmt.Sprintf("Title must be between %d and %d characters", p.TitleMinLength, p.TitleMaxLength))
	}

	if utf8.RuneCountInString(description) > p.DescriptionMaxLength {
		errs = append(errs, fmt.Sprintf("Description must not exceed %d characters", p.DescriptionMaxLength))
	}

	if timeLimit < 1 || timeLimit > p.MaxTimeLimit {
		errs = append(errs, fmt.Sprintf("Time limit must be between 1 and %d minutes", p.MaxTimeLimit))
	}

	if len(errs) > 0 {
		return util.NewValidation(errs...)
	}
	return nil
}

// ValidateQuestion 题干、题型必填；选项集合必须恰好有一个正确答案
func (p QuizPolicy) ValidateQuestion(req QuestionRequest) error {
	var errs []string

	if strings.TrimSpace(req.QuestionText) == "" {
		errs = append(errs, "Question text is required")
	}
	if strings.TrimSpace(req.QuestionType) == "" {
		errs = append(errs, "Question type is required")
	}

	correct := 0
	for i, opt := range req.Options {
		if strings.TrimSpace(opt.OptionText) == "" {
			errs = append(errs, fmt.Sprintf("Option %d text is required", i+1))
		}
		if opt.IsCorrect {
			correct++
		}
	}

	if len(req.Options) > 0 && len(req.Options) < p.MinOptions {
		errs = append(errs, fmt.Sprintf("Each question must have at least %d options", p.MinOptions))
	}
	if len(req.Options) == 0 || correct != 1 {
		errs = append(errs, util.MsgExactlyOneCorrectOption)
	}

	if len(errs) > 0 {
		return util.NewValidation(errs...)
	}
	return nil
}
