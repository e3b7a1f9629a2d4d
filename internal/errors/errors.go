package errors

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeRemoteFetch     = "REMOTE_FETCH"
	ErrCodeUnmatchedPlayer = "UNMATCHED_PLAYER"
	ErrCodeValidation      = "VALIDATION_ERROR"
)

// Severity tells the caller whether a failure ends the run or only degrades it.
type Severity int

const (
	// Fatal failures abort the whole export.
	Fatal Severity = iota
	// Recoverable failures are logged and replaced by a fallback.
	Recoverable
)

func (s Severity) String() string {
	switch s {
	case Fatal:
		return "fatal"
	case Recoverable:
		return "recoverable"
	default:
		return "unknown"
	}
}

// AppError represents an application error with a code, an optional remote
// status and the severity the caller should apply.
type AppError struct {
	Code     string   // Error code (e.g., "REMOTE_FETCH")
	Message  string   // Human-readable error message
	Status   int      // Remote HTTP status, 0 when no response was received
	Severity Severity // How callers should treat the failure
	Err      error    // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewRemoteFetchError creates a REMOTE_FETCH error for a request that did not
// return 200. status is 0 when the transport failed before a response.
func NewRemoteFetchError(url string, status int, severity Severity, err error) *AppError {
	msg := fmt.Sprintf("fetching %s failed with status %d", url, status)
	if status == 0 {
		msg = fmt.Sprintf("fetching %s failed", url)
	}
	return &AppError{
		Code:     ErrCodeRemoteFetch,
		Message:  msg,
		Status:   status,
		Severity: severity,
		Err:      err,
	}
}

// NewUnmatchedPlayerError reports a game where neither side is the queried player.
func NewUnmatchedPlayerError(username, gameURL string) *AppError {
	return &AppError{
		Code:     ErrCodeUnmatchedPlayer,
		Message:  fmt.Sprintf("%s played neither side of %s", username, gameURL),
		Severity: Recoverable,
	}
}

// NewValidationError reports an unusable setting. It is always fatal.
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:     ErrCodeValidation,
		Message:  fmt.Sprintf("validation failed for %s: %s", field, reason),
		Severity: Fatal,
	}
}

// IsFatal reports whether err should abort the run. Errors that are not an
// AppError are treated as fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Severity == Fatal
	}
	return true
}

// StatusOf returns the remote status carried by err, or 0.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
