package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer. None of these are
// retried automatically; the caller decides whether to resubmit.
type Kind string

const (
	// KindValidation : bad input shape or business-rule violation,
	// surfaced verbatim to the caller.
	KindValidation Kind = "validation"
	// KindNotFound : missing configuration, provider or reference.
	KindNotFound Kind = "not_found"
	// KindAccessDenied : caller is not allowed to perform the operation.
	KindAccessDenied Kind = "access_denied"
	// KindValue : malformed value or type in an otherwise well-shaped request.
	KindValue Kind = "value"
	// KindGateway : non-200 response or network failure on the external call.
	KindGateway Kind = "gateway"
	// KindAmbiguousOutcome : the processor answered 200 with a
	// non-succeeded status. Treated as a failure locally even though the
	// processor's true state is unknown.
	KindAmbiguousOutcome Kind = "ambiguous_outcome"
	// KindInternal : everything else.
	KindInternal Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return New(KindValidation, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

func Gateway(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindGateway, Message: fmt.Sprintf(format, args...), Err: err}
}

func AmbiguousOutcome(format string, args ...interface{}) *Error {
	return New(KindAmbiguousOutcome, format, args...)
}

// KindOf returns the Kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
