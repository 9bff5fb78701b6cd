package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizmaster_backend/internal/config"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/testutil"
	"quizmaster_backend/internal/util"
)

const testJWTSecret = "test-secret-with-enough-length-123456"

func newStudentService(t *testing.T) *StudentService {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewStudentService(repository.NewStudentRepository(db), config.JWTConfig{Secret: testJWTSecret, ExpireTime: time.Hour})
}

func TestStudentCreateAndLogin(t *testing.T) {
	s := newStudentService(t)
	ctx := context.Background()

	student, err := s.Create(ctx, CreateStudentRequest{Username: "alice", Email: "alice@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !student.Active || student.Deleted {
		t.Fatalf("new student should be active, got %+v", student)
	}
	if student.Password == "s3cret" {
		t.Fatalf("password stored in plain text")
	}

	resp, err := s.Login(ctx, StudentLoginRequest{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := util.ParseJWT(resp.Token, testJWTSecret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.StudentID != student.ID || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := s.Login(ctx, StudentLoginRequest{Username: "alice", Password: "wrong"}); !errors.Is(err, util.ErrUnauthorized) {
		t.Fatalf("Login with wrong password = %v, want ErrUnauthorized", err)
	}
	if _, err := s.Login(ctx, StudentLoginRequest{Username: "nobody", Password: "x"}); !errors.Is(err, util.ErrUnauthorized) {
		t.Fatalf("Login unknown user = %v, want ErrUnauthorized", err)
	}
}

func TestStudentDuplicateUsername(t *testing.T) {
	s := newStudentService(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, CreateStudentRequest{Username: "bob", Password: "pw"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, CreateStudentRequest{Username: "bob", Password: "pw"}); !errors.Is(err, util.ErrDuplicateEntry) {
		t.Fatalf("duplicate Create = %v, want ErrDuplicateEntry", err)
	}
}

func TestStudentSoftDeleteBlocksLogin(t *testing.T) {
	s := newStudentService(t)
	ctx := context.Background()

	student, err := s.Create(ctx, CreateStudentRequest{Username: "carol", Password: "pw"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(ctx, student.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := s.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Deleted || got.Active {
		t.Fatalf("soft delete not applied: %+v", got)
	}
	if _, err := s.Login(ctx, StudentLoginRequest{Username: "carol", Password: "pw"}); !errors.Is(err, util.ErrUnauthorized) {
		t.Fatalf("Login after delete = %v, want ErrUnauthorized", err)
	}
	if err := s.Delete(ctx, 999); !util.IsNotFound(err) {
		t.Fatalf("Delete(999) = %v, want NotFound", err)
	}
}

func TestStudentUpdateStatus(t *testing.T) {
	s := newStudentService(t)
	ctx := context.Background()

	student, err := s.Create(ctx, CreateStudentRequest{Username: "dave", Password: "pw"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	inactive := false
	updated, err := s.UpdateStatus(ctx, student.ID, StudentStatusRequest{Active: &inactive})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Active || updated.Deleted {
		t.Fatalf("unexpected status: %+v", updated)
	}

	got, err := s.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Active {
		t.Fatalf("deactivation not persisted")
	}
}
