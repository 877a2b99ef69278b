package apierror

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestProblemDetailsJSON(t *testing.T) {
	retryAfter := 60
	problem := &ProblemDetails{
		Type:        TypeValidation,
		Title:       TitleValidation,
		Status:      http.StatusBadRequest,
		Detail:      "Field validation failed",
		Instance:    "/api/v1/goals",
		RequestID:   "req-abc123",
		UserMessage: "Please fix the errors",
		RetryAfter:  &retryAfter,
		Action:      "fix_validation",
		Errors: []FieldError{
			{Field: "metric", Message: "is required", Code: "required"},
			{Field: "target_value", Message: "must be greater than 0", Code: "gt"},
		},
	}

	data, err := json.Marshal(problem)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]any{
		"type":         TypeValidation,
		"title":        TitleValidation,
		"status":       float64(http.StatusBadRequest),
		"detail":       "Field validation failed",
		"instance":     "/api/v1/goals",
		"request_id":   "req-abc123",
		"user_message": "Please fix the errors",
		"retry_after":  float64(60),
		"action":       "fix_validation",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
	if errs, ok := got["errors"].([]any); !ok || len(errs) != 2 {
		t.Errorf("errors = %v, want 2 entries", got["errors"])
	}
}

func TestProblemDetailsJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&ProblemDetails{
		Type:   TypeInternal,
		Title:  TitleInternal,
		Status: http.StatusInternalServerError,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, field := range []string{"detail", "instance", "request_id", "user_message", "retry_after", "action", "errors"} {
		if _, ok := got[field]; ok {
			t.Errorf("field %q should be omitted when empty", field)
		}
	}
	for _, field := range []string{"type", "title", "status"} {
		if _, ok := got[field]; !ok {
			t.Errorf("field %q should always be present", field)
		}
	}
}

// One row per constructor so the status/type/URN wiring stays covered as a
// set rather than a test function per helper.
func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		problem    *ProblemDetails
		wantType   string
		wantStatus int
	}{
		{"validation", NewValidationError("r", nil), TypeValidation, http.StatusBadRequest},
		{"bad request", NewBadRequestError("r", "d", "u"), TypeBadRequest, http.StatusBadRequest},
		{"invalid uuid", NewInvalidUUIDError("r", "goal_id", "nope"), TypeInvalidUUID, http.StatusBadRequest},
		{"future timestamp", NewFutureTimestampError("r", "goal_id"), TypeFutureTimestamp, http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("r"), TypeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("r"), TypeForbidden, http.StatusForbidden},
		{"not found", NewNotFoundError("r", "Goal", "g1"), TypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("r", "dup"), TypeConflict, http.StatusConflict},
		{"rate limit", NewRateLimitError("r", 60), TypeRateLimit, http.StatusTooManyRequests},
		{"internal", NewInternalError("r"), TypeInternal, http.StatusInternalServerError},
		{"unavailable", NewServiceUnavailableError("r", 300), TypeInternal, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.problem.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", tt.problem.Type, tt.wantType)
			}
			if tt.problem.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", tt.problem.Status, tt.wantStatus)
			}
			if tt.problem.RequestID != "r" {
				t.Errorf("RequestID = %q, want %q", tt.problem.RequestID, "r")
			}
		})
	}
}

func TestConstructorDetails(t *testing.T) {
	if p := NewNotFoundError("r", "Goal", "goal-456"); p.Detail != "Goal with ID 'goal-456' was not found" {
		t.Errorf("not found detail = %q", p.Detail)
	}

	if p := NewInternalError("r"); p.Detail != "An unexpected error occurred" {
		// Anything more specific risks leaking server internals.
		t.Errorf("internal detail = %q", p.Detail)
	}

	if p := NewUnauthorizedError("r"); p.Action != "authenticate" {
		t.Errorf("unauthorized action = %q, want %q", p.Action, "authenticate")
	}

	p := NewInvalidUUIDError("r", "goal_id", "not-a-uuid")
	if len(p.Errors) != 1 || p.Errors[0].Field != "goal_id" || p.Errors[0].Code != "invalid_uuid" {
		t.Errorf("invalid uuid errors = %+v", p.Errors)
	}

	if p := NewRateLimitError("r", 60); p.RetryAfter == nil || *p.RetryAfter != 60 {
		t.Errorf("rate limit retry_after = %v, want 60", p.RetryAfter)
	}

	if p := NewServiceUnavailableError("r", 300); p.RetryAfter == nil || *p.RetryAfter != 300 {
		t.Errorf("unavailable retry_after = %v, want 300", p.RetryAfter)
	}
}

func TestWriteProblem(t *testing.T) {
	t.Run("content type", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		WriteProblem(c, NewInternalError("req-123"))
		if ct := w.Header().Get("Content-Type"); ct != ContentTypeProblemJSON {
			t.Errorf("Content-Type = %q, want %q", ct, ContentTypeProblemJSON)
		}
	})

	t.Run("retry-after header mirrors body", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		WriteProblem(c, NewRateLimitError("req-456", 120))
		if h := w.Header().Get("Retry-After"); h != "120" {
			t.Errorf("Retry-After = %q, want %q", h, "120")
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}
		if body["retry_after"] != float64(120) {
			t.Errorf("retry_after in body = %v, want 120", body["retry_after"])
		}
	})

	t.Run("no retry-after when unset", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		WriteProblem(c, NewInternalError("req-789"))
		if h := w.Header().Get("Retry-After"); h != "" {
			t.Errorf("Retry-After = %q, want empty", h)
		}
	})
}

func TestProblemDetailsError(t *testing.T) {
	withDetail := &ProblemDetails{Title: TitleValidation, Detail: "Custom error message"}
	if withDetail.Error() != "Custom error message" {
		t.Errorf("Error() = %q", withDetail.Error())
	}
	titleOnly := &ProblemDetails{Title: TitleValidation}
	if titleOnly.Error() != TitleValidation {
		t.Errorf("Error() = %q, want title fallback", titleOnly.Error())
	}
}

func TestGetRequestID(t *testing.T) {
	t.Run("from gin context", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("request_id", "ctx-req-123")
		if got := GetRequestID(c); got != "ctx-req-123" {
			t.Errorf("GetRequestID = %q", got)
		}
	})

	t.Run("falls back to header", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/test", nil)
		c.Request.Header.Set("X-Request-ID", "header-req-456")
		if got := GetRequestID(c); got != "header-req-456" {
			t.Errorf("GetRequestID = %q", got)
		}
	})

	t.Run("empty when absent", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/test", nil)
		if got := GetRequestID(c); got != "" {
			t.Errorf("GetRequestID = %q, want empty", got)
		}
	})
}
