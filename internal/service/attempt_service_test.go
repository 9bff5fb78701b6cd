package service

import (
	"context"
	"testing"

	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/util"
)

func grant(t *testing.T, ts *testServices, student string, quizID *uint, title string) *model.RetakePermission {
	t.Helper()
	p, err := ts.retake.GrantRetake(context.Background(), GrantRetakeRequest{StudentName: student, QuizID: quizID, QuizTitle: title})
	if err != nil {
		t.Fatalf("GrantRetake(%s, %v, %q): %v", student, quizID, title, err)
	}
	return p
}

func isActive(t *testing.T, ts *testServices, id uint) bool {
	t.Helper()
	p, err := ts.repos.permission.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID(%d): %v", id, err)
	}
	return p.Active
}

func TestSubmitAttemptReconcilesMatchingGrants(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	byID := grant(t, ts, "Alice", uintPtr(5), "Java Basics")
	legacy := grant(t, ts, "Alice", nil, "Java Basics")
	both := grant(t, ts, "Alice", uintPtr(5), "Java Basics")
	otherQuiz := grant(t, ts, "Alice", uintPtr(6), "Python Basics")
	otherStudent := grant(t, ts, "Bob", uintPtr(5), "Java Basics")

	attempt, err := ts.attempt.SubmitAttempt(ctx, SubmitAttemptRequest{
		QuizID:         5,
		QuizTitle:      "Java Basics",
		StudentName:    "Alice",
		Score:          8,
		TotalQuestions: 10,
		TimeTaken:      300,
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.ID == 0 || !attempt.CompletedAt.Equal(fixedNow) || !attempt.CreatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected attempt: %+v", attempt)
	}

	for _, p := range []*model.RetakePermission{byID, legacy, both} {
		if isActive(t, ts, p.ID) {
			t.Fatalf("permission %d should be deactivated", p.ID)
		}
	}
	for _, p := range []*model.RetakePermission{otherQuiz, otherStudent} {
		if !isActive(t, ts, p.ID) {
			t.Fatalf("unrelated permission %d was deactivated", p.ID)
		}
	}
}

func TestReconcileDeactivatesEachGrantOnce(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	// 同时满足 quiz_id 与标题匹配的授权只应计一次
	grant(t, ts, "Alice", uintPtr(5), "Java Basics")
	grant(t, ts, "Alice", nil, "Java Basics")

	n, err := reconcileRetakes(ctx, ts.repos.permission, "Alice", 5, "Java Basics")
	if err != nil {
		t.Fatalf("reconcileRetakes: %v", err)
	}
	if n != 2 {
		t.Fatalf("deactivated %d grants, want 2", n)
	}

	n, err = reconcileRetakes(ctx, ts.repos.permission, "Alice", 5, "Java Basics")
	if err != nil {
		t.Fatalf("second reconcileRetakes: %v", err)
	}
	if n != 0 {
		t.Fatalf("second pass deactivated %d grants, want 0", n)
	}
}

func TestCanRetakeLifecycle(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	ok, err := ts.retake.CanRetake(ctx, "Alice", 5)
	if err != nil || ok {
		t.Fatalf("CanRetake before grant = (%v, %v), want (false, nil)", ok, err)
	}

	grant(t, ts, "Alice", uintPtr(5), "Java Basics")

	ok, err = ts.retake.CanRetake(ctx, "Alice", 5)
	if err != nil || !ok {
		t.Fatalf("CanRetake after grant = (%v, %v), want (true, nil)", ok, err)
	}
	if ok, _ := ts.retake.CanRetake(ctx, "Alice", 6); ok {
		t.Fatalf("grant for quiz 5 must not allow quiz 6")
	}

	if _, err := ts.attempt.SubmitAttempt(ctx, SubmitAttemptRequest{QuizID: 5, QuizTitle: "Java Basics", StudentName: "Alice", Score: 3, TotalQuestions: 5}); err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}

	ok, err = ts.retake.CanRetake(ctx, "Alice", 5)
	if err != nil || ok {
		t.Fatalf("CanRetake after submit = (%v, %v), want (false, nil)", ok, err)
	}

	// 新授权生成新记录，旧记录保持失效
	fresh := grant(t, ts, "Alice", uintPtr(5), "Java Basics")
	ok, _ = ts.retake.CanRetake(ctx, "Alice", 5)
	if !ok {
		t.Fatalf("CanRetake after re-grant should be true")
	}
	if n := countRows(t, ts.db, &model.RetakePermission{}, "student_name = ? AND active = ?", "Alice", false); n != 1 {
		t.Fatalf("%d inactive grants, want 1", n)
	}
	if fresh.ID == 0 || !fresh.Active || !fresh.AllowedAt.Equal(fixedNow) {
		t.Fatalf("unexpected fresh grant: %+v", fresh)
	}
}

func TestSubmitAttemptValidation(t *testing.T) {
	cases := []struct {
		name string
		req  SubmitAttemptRequest
	}{
		{"missing student", SubmitAttemptRequest{QuizID: 1, QuizTitle: "Quiz", Score: 1, TotalQuestions: 1}},
		{"missing title", SubmitAttemptRequest{QuizID: 1, StudentName: "Alice", Score: 1, TotalQuestions: 1}},
		{"missing quiz id", SubmitAttemptRequest{QuizTitle: "Quiz", StudentName: "Alice", Score: 1, TotalQuestions: 1}},
		{"negative score", SubmitAttemptRequest{QuizID: 1, QuizTitle: "Quiz", StudentName: "Alice", Score: -1, TotalQuestions: 1}},
		{"score above total", SubmitAttemptRequest{QuizID: 1, QuizTitle: "Quiz", StudentName: "Alice", Score: 4, TotalQuestions: 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServices(t)
			grant(t, ts, "Alice", uintPtr(1), "Quiz")

			if _, err := ts.attempt.SubmitAttempt(context.Background(), tc.req); !util.IsValidation(err) {
				t.Fatalf("SubmitAttempt() = %v, want ValidationError", err)
			}
			if n := countRows(t, ts.db, &model.QuizAttempt{}, "1 = 1"); n != 0 {
				t.Fatalf("%d attempts persisted after rejection", n)
			}
			if n := countRows(t, ts.db, &model.RetakePermission{}, "active = ?", true); n != 1 {
				t.Fatalf("grant touched by rejected attempt")
			}
		})
	}
}

func TestGrantRetakeValidation(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	if _, err := ts.retake.GrantRetake(ctx, GrantRetakeRequest{QuizID: uintPtr(1)}); !util.IsValidation(err) {
		t.Fatalf("grant without student = %v, want ValidationError", err)
	}
	if _, err := ts.retake.GrantRetake(ctx, GrantRetakeRequest{StudentName: "Alice"}); !util.IsValidation(err) {
		t.Fatalf("grant without quiz = %v, want ValidationError", err)
	}

	legacy, err := ts.retake.GrantRetake(ctx, GrantRetakeRequest{StudentName: "Alice", QuizID: uintPtr(0), QuizTitle: "Old Quiz"})
	if err != nil {
		t.Fatalf("title-only grant: %v", err)
	}
	if legacy.QuizID != nil {
		t.Fatalf("zero quiz id should be stored as null, got %v", *legacy.QuizID)
	}
}

func TestAttemptListings(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	submit := func(quizID uint, title, student string) {
		t.Helper()
		if _, err := ts.attempt.SubmitAttempt(ctx, SubmitAttemptRequest{QuizID: quizID, QuizTitle: title, StudentName: student, Score: 1, TotalQuestions: 2}); err != nil {
			t.Fatalf("SubmitAttempt: %v", err)
		}
	}
	submit(1, "Quiz One", "Alice")
	submit(2, "Quiz Two", "Alice")
	submit(1, "Quiz One", "Bob")

	all, err := ts.attempt.ListAttempts(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListAttempts = (%d, %v), want 3", len(all), err)
	}
	alice, err := ts.attempt.ListAttemptsByStudent(ctx, "Alice")
	if err != nil || len(alice) != 2 {
		t.Fatalf("ListAttemptsByStudent = (%d, %v), want 2", len(alice), err)
	}
	quizOne, err := ts.attempt.ListAttemptsByQuiz(ctx, 1)
	if err != nil || len(quizOne) != 2 {
		t.Fatalf("ListAttemptsByQuiz = (%d, %v), want 2", len(quizOne), err)
	}
	nobody, err := ts.attempt.ListAttemptsByStudent(ctx, "Carol")
	if err != nil || nobody == nil || len(nobody) != 0 {
		t.Fatalf("ListAttemptsByStudent(Carol) = (%v, %v), want empty slice", nobody, err)
	}
}

func TestPermissionListings(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	grant(t, ts, "Alice", uintPtr(1), "Quiz One")
	grant(t, ts, "Bob", uintPtr(1), "Quiz One")
	grant(t, ts, "Alice", uintPtr(2), "Quiz Two")

	if _, err := ts.attempt.SubmitAttempt(ctx, SubmitAttemptRequest{QuizID: 2, QuizTitle: "Quiz Two", StudentName: "Alice", Score: 1, TotalQuestions: 1}); err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}

	active, err := ts.retake.ListActivePermissions(ctx)
	if err != nil || len(active) != 2 {
		t.Fatalf("ListActivePermissions = (%d, %v), want 2", len(active), err)
	}
	alice, err := ts.retake.ListStudentPermissions(ctx, "Alice")
	if err != nil || len(alice) != 1 || alice[0].QuizTitle != "Quiz One" {
		t.Fatalf("ListStudentPermissions(Alice) = (%+v, %v)", alice, err)
	}
}
