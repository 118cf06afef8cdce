package llm

import "errors"

// ErrorKind classifies a completion failure so the HTTP layer can map it to
// a status code without inspecting provider-specific detail.
type ErrorKind string

const (
	// ErrKindValidation marks client input the pipeline refuses to process.
	ErrKindValidation ErrorKind = "validation"
	// ErrKindConfiguration marks a deployment problem, such as no backend
	// credentials being configured.
	ErrKindConfiguration ErrorKind = "configuration"
	// ErrKindProvider marks a single backend attempt failing. It stays
	// inside the fallback loop and never crosses the service boundary.
	ErrKindProvider ErrorKind = "provider"
	// ErrKindExhausted marks every configured backend having failed.
	ErrKindExhausted ErrorKind = "exhausted"
	// ErrKindInternal marks a defect in the gateway itself.
	ErrKindInternal ErrorKind = "internal"
)

// Error is a kind-tagged pipeline failure. Detail is safe to show to
// operators; it never contains credentials.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a pipeline error. Untagged non-nil errors are
// treated as internal; nil maps to the zero kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindInternal
}
