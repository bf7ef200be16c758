package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified breedkit error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Fatal indicates the run cannot proceed.
	Fatal bool `json:"fatal"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic fatal detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fatal:   IsFatalCode(code),
	}
}

// AsAppError extracts an *AppError from err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsFatal reports whether err (or anything it wraps) is a fatal AppError.
func IsFatal(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Fatal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// --- Common Error Constructors ---

// MissingParameter creates an AppError for a parameter that has no value
// under either its own key or its default key.
func MissingParameter(key, def string) *AppError {
	details := map[string]any{"key": key}
	if def != "" {
		details["default"] = def
	}
	return &AppError{
		Code: ErrCodeMissingParameter, Message: fmt.Sprintf("missing required parameter %s", key),
		Fatal: true, Details: details,
	}
}

// InvalidParameter creates an AppError for a parameter whose value is malformed or out of range.
func InvalidParameter(key, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidParameter, Message: fmt.Sprintf("invalid parameter %s: %s", key, reason),
		Fatal: true, Details: map[string]any{"key": key},
	}
}

// InvalidTopology creates an AppError for a source whose child count is wrong.
func InvalidTopology(key string, want, got int) *AppError {
	return &AppError{
		Code: ErrCodeInvalidTopology, Message: fmt.Sprintf("%s expects %d sources, got %d", key, want, got),
		Fatal: true, Details: map[string]any{"key": key, "want": want, "got": got},
	}
}

// UnknownSource creates an AppError for an unregistered source type name.
func UnknownSource(key, name string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownSource, Message: fmt.Sprintf("%s names unknown source type %q", key, name),
		Fatal: true, Details: map[string]any{"key": key, "type": name},
	}
}

// UnfilledStub creates an AppError for a stub slot that no FillStubs call reached.
func UnfilledStub(source string, slot int) *AppError {
	return &AppError{
		Code: ErrCodeUnfilledStub, Message: fmt.Sprintf("stub slot %d of %s was never filled", slot, source),
		Fatal: true, Details: map[string]any{"source": source, "slot": slot},
	}
}

// PipelineStalled creates an AppError for a root source that stopped producing.
func PipelineStalled(subpop, thread, remaining int) *AppError {
	return &AppError{
		Code: ErrCodePipelineStalled, Message: fmt.Sprintf("subpopulation %d thread %d produced nothing with %d individuals outstanding", subpop, thread, remaining),
		Details: map[string]any{"subpop": subpop, "thread": thread, "remaining": remaining},
	}
}

// Internal creates an AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred", Cause: cause,
	}
}
