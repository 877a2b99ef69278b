// Package handlers contains the gin HTTP handlers. Handlers translate
// between the wire format and the service layer and never touch the
// stores directly.
package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pulseboard/backend/internal/apierror"
	"github.com/pulseboard/backend/internal/service"
)

// userIDFrom pulls the authenticated user from the gin context. The
// identity middleware guarantees it is set on every protected route; a
// missing value means the route was wired outside the middleware.
func userIDFrom(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	return id, true
}

// validGoalID rejects IDs that are not well-formed UUIDv7 before they hit
// the store.
func validGoalID(c *gin.Context, id string) bool {
	err := service.ValidateUUIDv7(id)
	if err == nil {
		return true
	}

	requestID := apierror.GetRequestID(c)
	if errors.Is(err, service.ErrFutureTimestamp) {
		apierror.WriteProblem(c, apierror.NewFutureTimestampError(requestID, "id"))
		return false
	}
	apierror.WriteProblem(c, apierror.NewInvalidUUIDError(requestID, "id", id))
	return false
}

// writeBindingError maps a ShouldBindJSON failure to a Problem Details
// response: field-level details for validator errors, a generic bad
// request for malformed JSON.
func writeBindingError(c *gin.Context, err error) {
	requestID := apierror.GetRequestID(c)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make([]apierror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, apierror.FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
				Code:    fe.Tag(),
			})
		}
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

// queryInt parses an optional integer query parameter, falling back to
// def when absent or malformed.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(c *gin.Context, name string) (time.Time, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
