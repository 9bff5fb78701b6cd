package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"quizmaster_backend/internal/config"
	"quizmaster_backend/internal/middleware"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/testutil"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const testSecret = "controller-test-secret-0123456789abcdef"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewTestDB(t)

	quizRepo := repository.NewQuizRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	optionRepo := repository.NewOptionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	permissionRepo := repository.NewRetakePermissionRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	policy := service.NewPolicyStore(service.DefaultQuizPolicy())

	storage := service.NewStorageService(&config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()})
	quizzes := NewQuizController(
		service.NewQuizService(db, quizRepo, questionRepo, optionRepo, attemptRepo, policy),
		service.NewReportService(quizRepo, attemptRepo, storage),
	)
	questions := NewQuestionController(service.NewQuestionService(db, quizRepo, questionRepo, optionRepo, policy))
	retakes := service.NewRetakeService(permissionRepo)
	attempts := NewAttemptController(service.NewAttemptService(db, attemptRepo, permissionRepo), retakes)
	permissions := NewRetakePermissionController(retakes)
	students := NewStudentController(service.NewStudentService(studentRepo, config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour}))

	r := gin.New()
	api := r.Group("/api")
	api.POST("/quizzes", quizzes.CreateQuiz)
	api.GET("/quizzes", quizzes.ListQuizzes)
	api.GET("/quizzes/:id", quizzes.GetQuiz)
	api.PUT("/quizzes/:id", quizzes.UpdateQuiz)
	api.DELETE("/quizzes/:id", quizzes.DeleteQuiz)
	api.GET("/quizzes/:id/attempts/:studentName", quizzes.HasStudentTakenQuiz)
	api.POST("/quizzes/:id/attempts/export", quizzes.ExportAttempts)
	api.POST("/quizzes/:id/questions", questions.AddQuestion)
	api.GET("/quizzes/:id/questions", questions.ListQuestions)
	api.POST("/quiz-attempts", attempts.SubmitAttempt)
	api.GET("/quiz-attempts/can-retake/:studentName/:quizId", attempts.CanRetake)
	api.POST("/retake-permissions", permissions.GrantRetake)
	api.POST("/students", students.Create)
	api.POST("/students/login", students.Login)
	api.GET("/students/me", middleware.AuthMiddleware(testSecret), students.Me)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return env
}

func TestQuizScenarioOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/quizzes", map[string]interface{}{
		"title":       "Java Fundamentals",
		"description": "Test your Java knowledge",
		"timeLimit":   60,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create quiz status = %d, body %s", w.Code, w.Body.String())
	}
	var quiz struct {
		ID          uint   `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		TimeLimit   int    `json:"timeLimit"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &quiz); err != nil {
		t.Fatalf("decode quiz: %v", err)
	}
	if quiz.ID == 0 || quiz.Title != "Java Fundamentals" || quiz.Description != "Test your Java knowledge" || quiz.TimeLimit != 60 {
		t.Fatalf("unexpected quiz: %+v", quiz)
	}

	questionPath := "/api/quizzes/" + itoa(quiz.ID) + "/questions"
	w = doJSON(t, r, http.MethodPost, questionPath, map[string]interface{}{
		"questionText": "Which keyword declares a constant?",
		"questionType": "MULTIPLE_CHOICE",
		"options": []map[string]interface{}{
			{"optionText": "final", "isCorrect": true},
			{"optionText": "static", "isCorrect": false},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add question status = %d, body %s", w.Code, w.Body.String())
	}
	var question struct {
		Options []struct {
			IsCorrect bool `json:"isCorrect"`
		} `json:"options"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &question); err != nil {
		t.Fatalf("decode question: %v", err)
	}
	if len(question.Options) != 2 || !question.Options[0].IsCorrect || question.Options[1].IsCorrect {
		t.Fatalf("unexpected options: %+v", question.Options)
	}

	w = doJSON(t, r, http.MethodPost, questionPath, map[string]interface{}{
		"questionText": "Broken",
		"questionType": "MULTIPLE_CHOICE",
		"options": []map[string]interface{}{
			{"optionText": "a", "isCorrect": false},
			{"optionText": "b", "isCorrect": false},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid question status = %d, want 400", w.Code)
	}
	env := decode(t, w)
	if !containsString(env.Errors, "Each question must have exactly one correct option") {
		t.Fatalf("errors %v missing the correct-option message", env.Errors)
	}

	w = doJSON(t, r, http.MethodGet, "/api/quizzes/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get missing quiz status = %d, want 404", w.Code)
	}
}

func TestCreateQuizValidationOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/quizzes", map[string]interface{}{"title": "AB", "timeLimit": 200})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	env := decode(t, w)
	if len(env.Errors) != 2 {
		t.Fatalf("errors = %v, want title and time limit violations", env.Errors)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/quizzes", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d, want 400", w.Code)
	}
}

func TestDeleteQuizOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/quizzes", map[string]interface{}{"title": "Short lived", "timeLimit": 5})
	var quiz struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &quiz); err != nil {
		t.Fatalf("decode quiz: %v", err)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/quizzes/"+itoa(quiz.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/api/quizzes/"+itoa(quiz.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/quizzes/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric id status = %d, want 400", w.Code)
	}
}

func TestRetakeFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/retake-permissions", map[string]interface{}{
		"studentName": "Alice",
		"quizId":      5,
		"quizTitle":   "Java Basics",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("grant status = %d, body %s", w.Code, w.Body.String())
	}

	assertCanRetake(t, r, true)

	w = doJSON(t, r, http.MethodPost, "/api/quiz-attempts", map[string]interface{}{
		"quizId":         5,
		"quizTitle":      "Java Basics",
		"studentName":    "Alice",
		"score":          7,
		"totalQuestions": 10,
		"timeTaken":      120,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", w.Code, w.Body.String())
	}

	assertCanRetake(t, r, false)

	w = doJSON(t, r, http.MethodGet, "/api/quizzes/5/attempts/Alice", nil)
	var taken struct {
		HasTaken bool `json:"hasTaken"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &taken); err != nil || !taken.HasTaken {
		t.Fatalf("hasTaken = %+v (%v), want true", taken, err)
	}
}

func assertCanRetake(t *testing.T, r http.Handler, want bool) {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/api/quiz-attempts/can-retake/Alice/5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("can-retake status = %d", w.Code)
	}
	var body struct {
		CanRetake bool `json:"canRetake"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &body); err != nil {
		t.Fatalf("decode can-retake: %v", err)
	}
	if body.CanRetake != want {
		t.Fatalf("canRetake = %v, want %v", body.CanRetake, want)
	}
}

func TestStudentLoginAndMe(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/students", map[string]string{"username": "alice", "email": "alice@example.com", "password": "pw"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create student status = %d, body %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password hash leaked: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/students/login", map[string]string{"username": "alice", "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/students/login", map[string]string{"username": "alice", "password": "pw"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &login); err != nil || login.Token == "" {
		t.Fatalf("decode login: %+v %v", login, err)
	}

	w = doJSON(t, r, http.MethodGet, "/api/students/me", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me without token status = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/students/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"username":"alice"`) {
		t.Fatalf("me status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestExportAttemptsOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/quizzes/999/attempts/export", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("export missing quiz status = %d, want 404", w.Code)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
