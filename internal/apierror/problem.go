// Package apierror implements RFC 9457 Problem Details, the single error
// response shape used by every handler in the backend.
package apierror

// ProblemDetails is the wire form of an API error.
// See https://www.rfc-editor.org/rfc/rfc9457.html
type ProblemDetails struct {
	Type     string `json:"type"`               // problem type URI, one of the urn:pulseboard:error:* values
	Title    string `json:"title"`              // short summary, fixed per problem type
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // explanation of this specific occurrence
	Instance string `json:"instance,omitempty"` // request path that produced the problem

	// Extensions beyond the RFC baseline.
	RequestID   string       `json:"request_id,omitempty"`   // correlation ID, echoed from X-Request-ID
	UserMessage string       `json:"user_message,omitempty"` // safe to surface verbatim in a client UI
	RetryAfter  *int         `json:"retry_after,omitempty"`  // seconds until retry is allowed (429, 503)
	Action      string       `json:"action,omitempty"`       // client hint such as "authenticate" or "retry_later"
	Errors      []FieldError `json:"errors,omitempty"`       // per-field validation failures
}

// FieldError describes one field that failed request validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"` // machine-readable code such as "required" or "gt"
}

func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
