package service

import (
	"context"
	"errors"
	"quizmaster_backend/internal/config"
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StudentService struct {
	StudentRepo *repository.StudentRepository
	JWT         config.JWTConfig
}

func NewStudentService(studentRepo *repository.StudentRepository, jwtCfg config.JWTConfig) *StudentService {
	return &StudentService{
		StudentRepo: studentRepo,
		JWT:         jwtCfg,
	}
}

type CreateStudentRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type StudentStatusRequest struct {
	Active  *bool `json:"active"`
	Deleted *bool `json:"deleted"`
}

type StudentLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type StudentLoginResponse struct {
	Student *model.Student `json:"student"`
	Token   string         `json:"token"`
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.StudentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*model.Student, error) {
	username := strings.TrimSpace(req.Username)
	var errs []string
	if username == "" {
		errs = append(errs, "Username is required")
	}
	if req.Password == "" {
		errs = append(errs, "Password is required")
	}
	if len(errs) > 0 {
		return nil, util.NewValidation(errs...)
	}

	_, err := s.StudentRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil, util.ErrDuplicateEntry
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		Username: username,
		Email:    strings.TrimSpace(req.Email),
		Password: string(hashed),
		Active:   true,
		Deleted:  false,
	}
	if err := s.StudentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) UpdateStatus(ctx context.Context, id uint, req StudentStatusRequest) (*model.Student, error) {
	student, err := s.StudentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Student")
	}
	if req.Active != nil {
		student.Active = *req.Active
	}
	if req.Deleted != nil {
		student.Deleted = *req.Deleted
	}
	if err := s.StudentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete 软删除：保留记录，仅标记 deleted 并停用
func (s *StudentService) Delete(ctx context.Context, id uint) error {
	student, err := s.StudentRepo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Student")
	}
	student.Deleted = true
	student.Active = false
	return s.StudentRepo.Update(ctx, student)
}

func (s *StudentService) Login(ctx context.Context, req StudentLoginRequest) (*StudentLoginResponse, error) {
	student, err := s.StudentRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUnauthorized
		}
		return nil, err
	}

	if !student.Active || student.Deleted {
		return nil, util.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrUnauthorized
	}

	token, err := util.GenerateJWT(student, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &StudentLoginResponse{Student: student, Token: token}, nil
}

func (s *StudentService) GetByID(ctx context.Context, id uint) (*model.Student, error) {
	student, err := s.StudentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Student")
	}
	return student, nil
}
