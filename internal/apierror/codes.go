package apierror

// Error type URIs following the urn:haven:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:haven:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:haven:error:not_found"

	// TypeConflict indicates a resource conflict (409)
	TypeConflict = "urn:haven:error:conflict"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:haven:error:rate_limit"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:haven:error:unauthorized"

	// TypeForbidden indicates insufficient permissions (403)
	TypeForbidden = "urn:haven:error:forbidden"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:haven:error:internal"

	// TypeInvalidUUID indicates an invalid UUID format in request (400)
	TypeInvalidUUID = "urn:haven:error:invalid_uuid"

	// TypeFutureDate indicates a calendar date in the future where only
	// today or the past is allowed (400)
	TypeFutureDate = "urn:haven:error:future_date"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:haven:error:bad_request"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation   = "Validation Error"
	TitleNotFound     = "Resource Not Found"
	TitleConflict     = "Resource Conflict"
	TitleRateLimit    = "Rate Limit Exceeded"
	TitleUnauthorized = "Authentication Required"
	TitleForbidden    = "Permission Denied"
	TitleInternal     = "Internal Server Error"
	TitleInvalidUUID  = "Invalid UUID Format"
	TitleFutureDate   = "Future Date Not Allowed"
	TitleBadRequest   = "Bad Request"
)
