package core

import "fmt"

// Stable machine-readable error codes shared across domains. Routers map
// them onto HTTP statuses in exactly one place.
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeBackend    = "BACKEND_ERROR"
	ErrCodeImport     = "IMPORT_ERROR"
)

// Error is the canonical error type crossing domain boundaries.
type Error struct {
	Err     error          `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewError wraps err with a stable code and optional structured details.
func NewError(err error, code string, details map[string]any) *Error {
	message := code
	if err != nil {
		message = err.Error()
	}
	return &Error{
		Err:     err,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}
