package apierror

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem renders a ProblemDetails response with the proper
// Content-Type, mirroring RetryAfter into the Retry-After header.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)
	if problem.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*problem.RetryAfter))
	}
	c.JSON(problem.Status, problem)
}

// GetRequestID returns the correlation ID for the current request,
// preferring the value the RequestID middleware stored on the context.
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get("request_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return c.GetHeader("X-Request-ID")
}

func problem(typ, title string, status int, requestID, detail, userMessage string) *ProblemDetails {
	return &ProblemDetails{
		Type:        typ,
		Title:       title,
		Status:      status,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: userMessage,
	}
}

// NewValidationError reports one or more field-level failures as a single
// 400 so clients can surface everything at once.
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	p := problem(TypeValidation, TitleValidation, http.StatusBadRequest, requestID,
		"One or more fields failed validation",
		"Please check your input and try again")
	p.Errors = errors
	return p
}

// NewNotFoundError builds a 404 for a missing resource.
func NewNotFoundError(requestID, resource, id string) *ProblemDetails {
	return problem(TypeNotFound, TitleNotFound, http.StatusNotFound, requestID,
		fmt.Sprintf("%s with ID '%s' was not found", resource, id),
		fmt.Sprintf("The requested %s could not be found", resource))
}

// NewConflictError builds a 409. Re-ingested provider records are not
// conflicts (they supersede); use this for genuine ones, like a second
// goal on the same metric.
func NewConflictError(requestID, detail string) *ProblemDetails {
	return problem(TypeConflict, TitleConflict, http.StatusConflict, requestID,
		detail,
		"This action conflicts with existing data")
}

// NewRateLimitError builds a 429 with a retry hint in seconds.
func NewRateLimitError(requestID string, retryAfter int) *ProblemDetails {
	p := problem(TypeRateLimit, TitleRateLimit, http.StatusTooManyRequests, requestID,
		fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds", retryAfter),
		"Too many requests. Please wait before trying again.")
	p.RetryAfter = &retryAfter
	return p
}

// NewInternalError builds a 500. The detail is deliberately generic:
// the real error goes to the server log, never to the client.
func NewInternalError(requestID string) *ProblemDetails {
	return problem(TypeInternal, TitleInternal, http.StatusInternalServerError, requestID,
		"An unexpected error occurred",
		"Something went wrong. Please try again later.")
}

// NewBadRequestError builds a 400 for malformed requests.
func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	return problem(TypeBadRequest, TitleBadRequest, http.StatusBadRequest, requestID,
		detail, userMessage)
}

// NewUnauthorizedError builds a 401 for requests without a user identity.
func NewUnauthorizedError(requestID string) *ProblemDetails {
	p := problem(TypeUnauthorized, TitleUnauthorized, http.StatusUnauthorized, requestID,
		"A user identity is required to access this resource",
		"Identify yourself with the X-User-ID header")
	p.Action = "authenticate"
	return p
}

// NewForbiddenError builds a 403 for resources the caller may not touch.
func NewForbiddenError(requestID string) *ProblemDetails {
	return problem(TypeForbidden, TitleForbidden, http.StatusForbidden, requestID,
		"You do not have permission to access this resource",
		"You don't have permission to perform this action")
}

// NewInvalidUUIDError builds a 400 for identifiers that fail UUID parsing.
func NewInvalidUUIDError(requestID, field, value string) *ProblemDetails {
	p := problem(TypeInvalidUUID, TitleInvalidUUID, http.StatusBadRequest, requestID,
		fmt.Sprintf("Invalid UUID format for field '%s': '%s'", field, value),
		"Invalid identifier format")
	p.Errors = []FieldError{
		{Field: field, Message: "must be a valid UUID", Code: "invalid_uuid"},
	}
	return p
}

// NewFutureTimestampError builds a 400 for UUIDv7 identifiers whose embedded
// timestamp is further in the future than clock skew can explain.
func NewFutureTimestampError(requestID, field string) *ProblemDetails {
	p := problem(TypeFutureTimestamp, TitleFutureTimestamp, http.StatusBadRequest, requestID,
		fmt.Sprintf("Field '%s' contains a timestamp more than 1 minute in the future", field),
		"The timestamp is too far in the future")
	p.Errors = []FieldError{
		{Field: field, Message: "timestamp cannot be more than 1 minute in the future", Code: "future_timestamp"},
	}
	return p
}

// NewServiceUnavailableError builds a 503 with a retry hint in seconds.
func NewServiceUnavailableError(requestID string, retryAfter int) *ProblemDetails {
	p := problem(TypeInternal, "Service Unavailable", http.StatusServiceUnavailable, requestID,
		"The service is temporarily unavailable",
		"Service is temporarily unavailable. Please try again later.")
	p.RetryAfter = &retryAfter
	return p
}
