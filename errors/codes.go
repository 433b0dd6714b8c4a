package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Run failure kinds. One of these is the outermost code of any error
// returned by a pipeline run.
const (
	// ErrCodeSourceFailure indicates the source could not produce the next item.
	ErrCodeSourceFailure ErrorCode = "SOURCE_FAILURE"
	// ErrCodeStageFailure indicates a stage could not transform an item.
	ErrCodeStageFailure ErrorCode = "STAGE_FAILURE"
	// ErrCodeSinkFailure indicates the sink could not accept an item.
	ErrCodeSinkFailure ErrorCode = "SINK_FAILURE"
)

// Stage-level causes, usually found underneath ErrCodeStageFailure.
const (
	// ErrCodeTypeMismatch indicates a stage received an item of an unexpected type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeEmptyVariantSet indicates variant selection was given no candidates.
	ErrCodeEmptyVariantSet ErrorCode = "EMPTY_VARIANT_SET"
	// ErrCodeVariantNotInSet indicates a selector returned a variant that was not a candidate.
	ErrCodeVariantNotInSet ErrorCode = "VARIANT_NOT_IN_SET"
	// ErrCodeMalformedResponse indicates a model response could not be parsed.
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	// ErrCodeModelFailure indicates the model client call failed.
	ErrCodeModelFailure ErrorCode = "MODEL_FAILURE"
)

// Configuration and input errors
const (
	// ErrCodeInvalidConfig indicates a component was constructed with invalid settings.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Transport errors raised by collaborators.
const (
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeConnectionFailed indicates a failed connection to a service.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeExternalService indicates an error from an external service.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
