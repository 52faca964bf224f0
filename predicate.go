package querykit

import (
	"fmt"
	"reflect"
)

// Predicate is a boolean expression tree with exactly one free parameter of
// type T. The zero value is invalid; build predicates with NewPredicate or
// Where.
type Predicate[T any] struct {
	param *ParameterExpr
	body  Expr
}

// NewPredicate creates a predicate from a parameter and a boolean-valued
// body. The parameter's type must match T.
func NewPredicate[T any](param *ParameterExpr, body Expr) (Predicate[T], error) {
	if param == nil || body == nil {
		return Predicate[T]{}, ErrNilPredicate
	}
	want := reflect.TypeOf((*T)(nil)).Elem()
	if param.Type != want {
		return Predicate[T]{}, fmt.Errorf("%w: parameter type %s does not match predicate type %s", ErrTypeMismatch, param.Type, want)
	}
	return Predicate[T]{param: param, body: body}, nil
}

// Where builds a predicate over T by handing a fresh parameter to the
// builder function.
func Where[T any](build func(it *ParameterExpr) Expr) (Predicate[T], error) {
	if build == nil {
		return Predicate[T]{}, ErrNilSelector
	}
	param := NewParameter[T]("it")
	body := build(param)
	if body == nil {
		return Predicate[T]{}, ErrNilPredicate
	}
	return Predicate[T]{param: param, body: body}, nil
}

// Param returns the predicate's free parameter.
func (p Predicate[T]) Param() *ParameterExpr {
	return p.param
}

// Body returns the predicate's boolean expression body.
func (p Predicate[T]) Body() Expr {
	return p.body
}

// And combines two predicates so the result holds when both hold.
func (p Predicate[T]) And(q Predicate[T]) (Predicate[T], error) {
	return p.combine(q, OpAnd)
}

// Or combines two predicates so the result holds when either holds.
func (p Predicate[T]) Or(q Predicate[T]) (Predicate[T], error) {
	return p.combine(q, OpOr)
}

// Equal combines two predicates so the result holds when both evaluate to
// the same boolean.
func (p Predicate[T]) Equal(q Predicate[T]) (Predicate[T], error) {
	return p.combine(q, OpEqual)
}

// NotEqual combines two predicates so the result holds when they evaluate
// to different booleans.
func (p Predicate[T]) NotEqual(q Predicate[T]) (Predicate[T], error) {
	return p.combine(q, OpNotEqual)
}

// combine aligns q onto p's parameter and joins both bodies under op. The
// second predicate's parameter never survives into the result.
func (p Predicate[T]) combine(q Predicate[T], op BinaryOperator) (Predicate[T], error) {
	if p.body == nil || p.param == nil || q.body == nil || q.param == nil {
		return Predicate[T]{}, ErrNilPredicate
	}

	aligned, err := Substitute(q.body, q.param, p.param)
	if err != nil {
		return Predicate[T]{}, err
	}

	return Predicate[T]{
		param: p.param,
		body:  &BinaryExpr{Left: p.body, Op: op, Right: aligned},
	}, nil
}
