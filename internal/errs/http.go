package errs

import "strings"

// FieldError is a validation problem tied to a single request field.
//
//	{ "field": "name", "error": "is required" }
type FieldError struct {
	// Field is the lower-cased JSON name of the offending field.
	Field string `json:"field"`

	// Error is the human-readable rule that was broken.
	Error string `json:"error"`
}

// HTTPError is the error type every handler, service and translator returns
// once it knows how a failure should look to the client.
//
// Fields:
//   - Code: machine-friendly code (e.g. "BAD_REQUEST", "PERSON_ALREADY_EXISTS").
//   - Message: human-friendly message, serialized under "error".
//   - Status: HTTP status code.
//   - Override: whether the message is safe to show as-is in a UI.
//   - Errors: per-field validation errors.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"error"`
	Status   int    `json:"status"`
	Override bool   `json:"-"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the error interface.
// It returns Message so logs show what the client saw.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// Only the type is compared, not Code or Status, so errors.Is(err, &HTTPError{})
// answers "has this error already been translated?".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// MakeUpperCaseWithUnderscores turns status text into a stable error code.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
