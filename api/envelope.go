package api

import "encoding/json"

// ErrorData is a single field-level error as reported by the backend or by
// local schema validation.
type ErrorData struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// envelope is the raw backend response wrapper: { success, code, data, errors }.
// Data is kept raw so callers can decode it into their own type.
type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
	Errors  []ErrorData     `json:"errors,omitempty"`
}

// Result is the decoded outcome of a backend call. Exactly one of the two
// shapes the backend uses: a successful envelope with Data, or an error
// envelope with Code and optional field Errors. Transport failures are
// collapsed into an error Result rather than returned as Go errors, so UI
// code only ever branches on Ok.
type Result[T any] struct {
	Ok     bool
	Code   string
	Errors []ErrorData
	Data   T
}

// Err builds a failed Result with the given error code.
func Err[T any](code string, errors ...ErrorData) Result[T] {
	return Result[T]{Ok: false, Code: code, Errors: errors}
}

const (
	// CodeFetchError is the collapsed code for network failures, non-JSON
	// responses and other transport-level problems.
	CodeFetchError = "FETCH_ERROR"

	// CodeValidationError marks results produced by local schema validation
	// that never reached the network.
	CodeValidationError = "VALIDATION_ERROR"
)
