package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable is always false for run failures; nothing in this module retries.
	Retryable bool `json:"retryable"`
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

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Run failures ---

// SourceFailure wraps an error returned by a pipeline source.
func SourceFailure(cause error) *AppError {
	return &AppError{
		Code: ErrCodeSourceFailure, Message: "source failed to produce the next item",
		Cause: cause,
	}
}

// StageFailure wraps an error returned by the stage at position index.
func StageFailure(stage string, index int, cause error) *AppError {
	return &AppError{
		Code: ErrCodeStageFailure, Message: fmt.Sprintf("stage %q failed", stage),
		Details: map[string]any{"stage": stage, "stage_index": index},
		Cause:   cause,
	}
}

// SinkFailure wraps an error returned by a pipeline sink.
func SinkFailure(sink string, cause error) *AppError {
	details := map[string]any{}
	if sink != "" {
		details["sink"] = sink
	}
	return &AppError{
		Code: ErrCodeSinkFailure, Message: "sink rejected an item",
		Details: details, Cause: cause,
	}
}

// --- Stage causes ---

// TypeMismatch reports that a stage expected want but received got.
func TypeMismatch(stage, want, got string) *AppError {
	return &AppError{
		Code:    ErrCodeTypeMismatch,
		Message: fmt.Sprintf("stage %q expects %s, got %s", stage, want, got),
		Details: map[string]any{"stage": stage, "want": want, "got": got},
	}
}

// EmptyVariantSet reports that variant selection was invoked without candidates.
func EmptyVariantSet(stage string) *AppError {
	return &AppError{
		Code:    ErrCodeEmptyVariantSet,
		Message: fmt.Sprintf("stage %q has no prompt variants to select from", stage),
		Details: map[string]any{"stage": stage},
	}
}

// VariantNotInSet reports that a selector returned a variant outside the candidates.
func VariantNotInSet(stage, id string) *AppError {
	return &AppError{
		Code:    ErrCodeVariantNotInSet,
		Message: fmt.Sprintf("stage %q selected variant %q which is not a candidate", stage, id),
		Details: map[string]any{"stage": stage, "variant_id": id},
	}
}

// MalformedResponse reports a model response the stage could not parse.
func MalformedResponse(stage string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeMalformedResponse,
		Message: fmt.Sprintf("stage %q could not parse the model response", stage),
		Details: map[string]any{"stage": stage},
		Cause:   cause,
	}
}

// ModelFailure wraps an error returned by the model client.
func ModelFailure(stage string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeModelFailure,
		Message: fmt.Sprintf("stage %q model call failed", stage),
		Details: map[string]any{"stage": stage},
		Cause:   cause,
	}
}

// --- Configuration ---

// InvalidConfig reports an invalid construction-time setting.
func InvalidConfig(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("Invalid configuration: %s", reason),
		Details: details,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for struct validation failures.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// --- Transport ---

// Timeout creates a new AppError for an operation that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long.",
		Details: map[string]any{"operation": operation},
	}
}

// ConnectionFailed creates a new AppError for a failed connection to a service.
func ConnectionFailed(service string) *AppError {
	return &AppError{
		Code:    ErrCodeConnectionFailed,
		Message: fmt.Sprintf("Unable to connect to %s.", service),
		Details: map[string]any{"service": service},
	}
}

// ExternalService creates a new AppError for a failing dependency.
func ExternalService(service string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeExternalService,
		Message: fmt.Sprintf("%s returned an error", service),
		Details: map[string]any{"service": service},
		Cause:   cause,
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}

// --- Inspection ---

// AsAppError returns the outermost *AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the outermost *AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether any *AppError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		appErr, ok := AsAppError(err)
		if !ok {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }
