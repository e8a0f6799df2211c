package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies business-level failures. These are legitimate outcomes
// surfaced to the caller, never retried internally and never fatal.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInvalidState Kind = "invalid_state"
	KindValidation   Kind = "validation"
	KindInternal     Kind = "internal"
)

// Error is a business error carrying the failure kind and, when known,
// the entity and id it refers to. The wrapped Err is for logs only and
// is never serialized to clients.
type Error struct {
	Kind    Kind   `json:"code"`
	Message string `json:"message"`
	Entity  string `json:"entity,omitempty"`
	ID      int64  `json:"id,omitempty"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s (%s %d)", e.Kind, e.Message, e.Entity, e.ID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports an absent customer, film, rental or similar entity.
func NotFound(entity string, id int64) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", entity),
		Entity:  entity,
		ID:      id,
	}
}

// Conflict reports contended or exhausted inventory. This is a business
// outcome (no stock), not a system fault.
func Conflict(message, entity string, id int64) *Error {
	return &Error{Kind: KindConflict, Message: message, Entity: entity, ID: id}
}

// InvalidState reports an operation against an entity in the wrong state,
// such as returning an already-returned rental.
func InvalidState(message, entity string, id int64) *Error {
	return &Error{Kind: KindInvalidState, Message: message, Entity: entity, ID: id}
}

// Validation reports missing or malformed input fields.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Internal wraps an unexpected fault (datastore connectivity, bugs). The
// underlying error goes to logs; clients see a generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// From extracts an *Error from err, classifying unknown errors as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsKind reports whether err is a business error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
