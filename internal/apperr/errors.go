// Package apperr defines the error taxonomy shared by the grading services.
// Every failure carries a stable Kind plus a human-readable message naming
// the offending field or entity, so the presentation layer can map errors
// to status codes without string matching.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidArgument       Kind = "invalid_argument"
	KindNotFound              Kind = "not_found"
	KindConflict              Kind = "conflict"
	KindWeightLimitExceeded   Kind = "weight_limit_exceeded"
	KindInvalidEvaluationKind Kind = "invalid_evaluation_kind"
	KindInvalidState          Kind = "invalid_state"
	KindStorageFailure        Kind = "storage_failure"
)

type Error struct {
	Kind   Kind
	Field  string // offending field, set for invalid_argument
	Entity string // missing entity, set for not_found
	Msg    string
	Err    error // wrapped cause, set for storage_failure
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so callers can compare against
// the kind sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrInvalidArgument       = &Error{Kind: KindInvalidArgument}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrConflict              = &Error{Kind: KindConflict}
	ErrWeightLimitExceeded   = &Error{Kind: KindWeightLimitExceeded}
	ErrInvalidEvaluationKind = &Error{Kind: KindInvalidEvaluationKind}
	ErrInvalidState          = &Error{Kind: KindInvalidState}
	ErrStorageFailure        = &Error{Kind: KindStorageFailure}
)

func InvalidArgument(field, msg string) error {
	return &Error{Kind: KindInvalidArgument, Field: field, Msg: msg}
}

func NotFound(entity string) error {
	return &Error{Kind: KindNotFound, Entity: entity, Msg: entity + " not found"}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

func WeightLimitExceeded(msg string) error {
	return &Error{Kind: KindWeightLimitExceeded, Msg: msg}
}

func InvalidEvaluationKind(kind string) error {
	return &Error{Kind: KindInvalidEvaluationKind, Msg: fmt.Sprintf("invalid evaluation kind: %q", kind)}
}

func InvalidState(msg string) error {
	return &Error{Kind: KindInvalidState, Msg: msg}
}

func Storage(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStorageFailure, Msg: "storage failure", Err: err}
}

// KindOf reports the taxonomy kind of err, or "" for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
