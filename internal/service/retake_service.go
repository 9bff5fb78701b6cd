package service

import (
	"context"
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"
	"quizmaster_backend/pkg/logger"
	"quizmaster_backend/pkg/monitoring"
	"strings"
	"time"

	"go.uber.org/zap"
)

type RetakeService struct {
	PermissionRepo *repository.RetakePermissionRepository
	Now            func() time.Time
}

func NewRetakeService(permissionRepo *repository.RetakePermissionRepository) *RetakeService {
	return &RetakeService{
		PermissionRepo: permissionRepo,
		Now:            time.Now,
	}
}

type GrantRetakeRequest struct {
	StudentName string `json:"studentName"`
	QuizID      *uint  `json:"quizId"`
	QuizTitle   string `json:"quizTitle"`
}

// GrantRetake 每次授权都新建一条记录，不与旧授权合并
func (s *RetakeService) GrantRetake(ctx context.Context, req GrantRetakeRequest) (*model.RetakePermission, error) {
	var errs []string
	if strings.TrimSpace(req.StudentName) == "" {
		errs = append(errs, "Student name is required")
	}
	if (req.QuizID == nil || *req.QuizID == 0) && strings.TrimSpace(req.QuizTitle) == "" {
		errs = append(errs, "Quiz id or quiz title is required")
	}
	if len(errs) > 0 {
		return nil, util.NewValidation(errs...)
	}

	quizID := req.QuizID
	if quizID != nil && *quizID == 0 {
		quizID = nil
	}
	p := &model.RetakePermission{
		StudentName: strings.TrimSpace(req.StudentName),
		QuizID:      quizID,
		QuizTitle:   strings.TrimSpace(req.QuizTitle),
		AllowedAt:   s.Now(),
		Active:      true,
	}
	if err := s.PermissionRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *RetakeService) CanRetake(ctx context.Context, studentName string, quizID uint) (bool, error) {
	count, err := s.PermissionRepo.CountActiveByStudentAndQuiz(ctx, studentName, quizID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *RetakeService) ListActivePermissions(ctx context.Context) ([]model.RetakePermission, error) {
	ps, err := s.PermissionRepo.ListActive(ctx)
	if ps == nil {
		ps = []model.RetakePermission{}
	}
	return ps, err
}

func (s *RetakeService) ListStudentPermissions(ctx context.Context, studentName string) ([]model.RetakePermission, error) {
	ps, err := s.PermissionRepo.ListActiveByStudent(ctx, studentName)
	if ps == nil {
		ps = []model.RetakePermission{}
	}
	return ps, err
}

// reconcileRetakes 提交成绩后关闭该学生对该测验的全部有效授权。
// 先按 quiz_id 匹配，再按标题匹配旧数据，两组结果按 id 去重，每条只失效一次。
func reconcileRetakes(ctx context.Context, permissions *repository.RetakePermissionRepository, studentName string, quizID uint, quizTitle string) (int, error) {
	byID, err := permissions.ListActiveByStudentAndQuiz(ctx, studentName, quizID)
	if err != nil {
		return 0, err
	}
	byTitle, err := permissions.ListActiveByStudentAndTitle(ctx, studentName, quizTitle)
	if err != nil {
		return 0, err
	}

	matched := make(map[uint]string, len(byID)+len(byTitle))
	order := make([]uint, 0, len(byID)+len(byTitle))
	for _, p := range byID {
		if _, ok := matched[p.ID]; !ok {
			matched[p.ID] = "quiz_id"
			order = append(order, p.ID)
		}
	}
	for _, p := range byTitle {
		if _, ok := matched[p.ID]; !ok {
			matched[p.ID] = "title"
			order = append(order, p.ID)
		}
	}

	deactivated := 0
	for _, id := range order {
		n, err := permissions.Deactivate(ctx, id)
		if err != nil {
			return deactivated, err
		}
		if n > 0 {
			deactivated++
			monitoring.RetakeGrantsDeactivated.WithLabelValues(matched[id]).Inc()
		}
	}

	if deactivated > 0 {
		logger.Log.Info("Retake permissions deactivated",
			zap.String("student", studentName),
			zap.Uint("quiz_id", quizID),
			zap.String("quiz_title", quizTitle),
			zap.Int("count", deactivated),
		)
	}
	return deactivated, nil
}
