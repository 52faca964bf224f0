package querykit

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
// These can be used with errors.Is() for error handling.
var (
	// ErrNilExpression indicates a required expression tree was nil.
	ErrNilExpression = errors.New("querykit: expression is nil")

	// ErrNilPredicate indicates a required predicate (or its body) was nil.
	ErrNilPredicate = errors.New("querykit: predicate is nil")

	// ErrNilSelector indicates a required selector or callback function was nil.
	ErrNilSelector = errors.New("querykit: selector function is nil")

	// ErrNilCollection indicates a required map or collection argument was nil.
	ErrNilCollection = errors.New("querykit: collection is nil")

	// ErrNilQuery indicates a required database query handle was nil.
	ErrNilQuery = errors.New("querykit: query is nil")

	// ErrUnknownMember indicates a member access did not resolve to a
	// property of the value being evaluated.
	ErrUnknownMember = errors.New("querykit: unknown member")

	// ErrNotStringMember indicates a substring predicate was requested
	// against a non-string property.
	ErrNotStringMember = errors.New("querykit: member is not a string property")

	// ErrNotBoolean indicates an expression expected to yield a boolean
	// produced something else.
	ErrNotBoolean = errors.New("querykit: expression is not boolean")

	// ErrEmptyProjection indicates a type projection produced no body.
	ErrEmptyProjection = errors.New("querykit: projection produced no body")

	// ErrTypeMismatch indicates values of incompatible types were compared.
	ErrTypeMismatch = errors.New("querykit: incomparable value types")

	// ErrUnsupportedExpr indicates an expression node kind is not supported
	// in the requested operation.
	ErrUnsupportedExpr = errors.New("querykit: unsupported expression node")
)

// ExprError provides a structured error tying a failure to a specific
// operation and member. It wraps one of the sentinel errors above so
// callers can still match with errors.Is().
type ExprError struct {
	// Op names the operation that failed (e.g. "compile", "project").
	Op string

	// Member is the property name involved, if any.
	Member string

	// Err is the underlying sentinel or cause.
	Err error
}

// Error implements the error interface.
func (e *ExprError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Member, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap implements error unwrapping for errors.Is() and errors.As().
func (e *ExprError) Unwrap() error {
	return e.Err
}
