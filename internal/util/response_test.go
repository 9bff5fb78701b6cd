package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHandleErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantErrors int
	}{
		{"not found", NewNotFound("Quiz"), http.StatusNotFound, 1},
		{"wrapped not found", fmt.Errorf("load: %w", NewNotFound("Quiz")), http.StatusNotFound, 1},
		{"validation", NewValidation("a", "b"), http.StatusBadRequest, 2},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, 1},
		{"duplicate", ErrDuplicateEntry, http.StatusConflict, 1},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(c, tc.err)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			var body ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(body.Errors) != tc.wantErrors {
				t.Fatalf("errors = %v, want %d entries", body.Errors, tc.wantErrors)
			}
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFound("Quiz")
	if err.Error() != "Quiz not found" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !IsNotFound(err) || IsValidation(err) {
		t.Fatalf("sentinel matching is wrong for %v", err)
	}
}
