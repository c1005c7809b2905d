package httperr

import "errors"

// Kind classifies a business rule failure. Every kind maps to a 4xx
// status in Respond; anything else is a 500.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindConflict      Kind = "conflict"
	KindState         Kind = "state"
	KindDependency    Kind = "dependency"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string

	// Detail carries structured context (conflicting or blocking records)
	// merged into the error response body.
	Detail map[string]any
}

func (e *BusinessError) Error() string {
	return e.Code
}

func Validation(code, message string) error {
	return &BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func Conflict(code, message string, detail map[string]any) error {
	return &BusinessError{Kind: KindConflict, Code: code, Message: message, Detail: detail}
}

func State(code, message string) error {
	return &BusinessError{Kind: KindState, Code: code, Message: message}
}

func Dependency(code, message string, detail map[string]any) error {
	return &BusinessError{Kind: KindDependency, Code: code, Message: message, Detail: detail}
}

func Forbidden(code, message string) error {
	return &BusinessError{Kind: KindAuthorization, Code: code, Message: message}
}

func NotFound(code, message string) error {
	return &BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
