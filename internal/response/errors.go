package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Quiz sessions ─────────────────────────────────────────────────
	ErrQuizClosed        ErrCode = "QUIZ_CLOSED"
	ErrSessionOngoing    ErrCode = "SESSION_ALREADY_ONGOING"
	ErrSessionFinished   ErrCode = "SESSION_FINISHED"
	ErrDeadlineExceeded  ErrCode = "DEADLINE_EXCEEDED"
	ErrNotSessionOwner   ErrCode = "NOT_SESSION_OWNER"
	ErrQuizPoolExhausted ErrCode = "QUIZ_POOL_EXHAUSTED"

	// ─── Events ────────────────────────────────────────────────────────
	ErrEventFull          ErrCode = "EVENT_FULL"
	ErrAlreadyRegistered  ErrCode = "ALREADY_REGISTERED"
	ErrNotRegistered      ErrCode = "NOT_REGISTERED"
	ErrAlreadyCheckedIn   ErrCode = "ALREADY_CHECKED_IN"
	ErrInvalidCheckInCode ErrCode = "INVALID_CHECKIN_CODE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrSessionInvalidated:
		return "Your session has expired. Please log in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have access to this resource."
	case ErrPermissionDenied:
		return "Your role does not have the permission to perform this action."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The ID format is invalid."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrConflict:
		return "The resource already exists."
	case ErrDependencyExists:
		return "The resource cannot be deleted because other data still depends on it."

	// ─── Quiz sessions ─────────────────────────────────────────────────
	case ErrQuizClosed:
		return "This quiz is not currently open for attempts."
	case ErrSessionOngoing:
		return "You already have an ongoing session for this quiz."
	case ErrSessionFinished:
		return "This session has already been finished."
	case ErrDeadlineExceeded:
		return "The session deadline has passed. Your saved answers will be scored automatically."
	case ErrNotSessionOwner:
		return "This session belongs to another user."
	case ErrQuizPoolExhausted:
		return "The quiz does not have enough questions to start a session."

	// ─── Events ────────────────────────────────────────────────────────
	case ErrEventFull:
		return "This event has reached its registration capacity."
	case ErrAlreadyRegistered:
		return "You are already registered for this event."
	case ErrNotRegistered:
		return "You are not registered for this event."
	case ErrAlreadyCheckedIn:
		return "This registration has already been checked in."
	case ErrInvalidCheckInCode:
		return "The check-in code is invalid."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
