package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors (fatal, reported before breeding starts)
const (
	// ErrCodeMissingParameter indicates a required parameter has no value.
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"
	// ErrCodeInvalidParameter indicates a parameter is malformed or out of range.
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"
	// ErrCodeInvalidTopology indicates a source has the wrong number of children.
	ErrCodeInvalidTopology ErrorCode = "INVALID_TOPOLOGY"
	// ErrCodeUnknownSource indicates a source type name is not registered.
	ErrCodeUnknownSource ErrorCode = "UNKNOWN_SOURCE"
	// ErrCodeUnfilledStub indicates a stub slot was never wired to a source.
	ErrCodeUnfilledStub ErrorCode = "UNFILLED_STUB"
)

// Breeding errors
const (
	// ErrCodePipelineStalled indicates a root source produced nothing for a non-empty quota.
	ErrCodePipelineStalled ErrorCode = "PIPELINE_STALLED"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var fatalCodes = map[ErrorCode]bool{
	ErrCodeMissingParameter: true,
	ErrCodeInvalidParameter: true,
	ErrCodeInvalidTopology:  true,
	ErrCodeUnknownSource:    true,
	ErrCodeUnfilledStub:     true,
	ErrCodePipelineStalled:  false,
	ErrCodeInternal:         false,
}

// IsFatalCode returns true if the code describes an unrunnable assembly.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
