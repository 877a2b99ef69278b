package apierror

// Problem type URIs. Each value fills the "type" field of a ProblemDetails
// and is stable API: clients switch on these strings.
const (
	TypeValidation      = "urn:pulseboard:error:validation"       // 400, field-level failures
	TypeBadRequest      = "urn:pulseboard:error:bad_request"      // 400, malformed request
	TypeInvalidUUID     = "urn:pulseboard:error:invalid_uuid"     // 400, identifier fails UUID parsing
	TypeFutureTimestamp = "urn:pulseboard:error:future_timestamp" // 400, UUIDv7 timestamp too far ahead
	TypeUnauthorized    = "urn:pulseboard:error:unauthorized"     // 401, no user identity
	TypeForbidden       = "urn:pulseboard:error:forbidden"        // 403
	TypeNotFound        = "urn:pulseboard:error:not_found"        // 404
	TypeConflict        = "urn:pulseboard:error:conflict"         // 409
	TypeRateLimit       = "urn:pulseboard:error:rate_limit"       // 429
	TypeInternal        = "urn:pulseboard:error:internal"         // 500 and 503
)

// Fixed titles, one per problem type.
const (
	TitleValidation      = "Validation Error"
	TitleBadRequest      = "Bad Request"
	TitleInvalidUUID     = "Invalid UUID Format"
	TitleFutureTimestamp = "Future Timestamp Not Allowed"
	TitleUnauthorized    = "Authentication Required"
	TitleForbidden       = "Permission Denied"
	TitleNotFound        = "Resource Not Found"
	TitleConflict        = "Resource Conflict"
	TitleRateLimit       = "Rate Limit Exceeded"
	TitleInternal        = "Internal Server Error"
)
