package querykit

import (
	"reflect"

	"github.com/querykit/go-querykit/internal/typemeta"
)

// In builds a predicate matching items whose field equals any of the given
// values. An empty value list yields a predicate that matches nothing.
func In[T any](field string, values ...interface{}) (Predicate[T], error) {
	return membershipPredicate[T](field, values, false)
}

// NotIn builds a predicate matching items whose field equals none of the
// given values. An empty value list yields a predicate that matches
// everything.
func NotIn[T any](field string, values ...interface{}) (Predicate[T], error) {
	return membershipPredicate[T](field, values, true)
}

func membershipPredicate[T any](field string, values []interface{}, negate bool) (Predicate[T], error) {
	if _, err := resolveField[T](field); err != nil {
		return Predicate[T]{}, err
	}

	param := NewParameter[T]("it")
	if len(values) == 0 {
		return Predicate[T]{param: param, body: Constant(negate)}, nil
	}

	member := Field(param, field)
	var body Expr
	for _, value := range values {
		var clause Expr
		if negate {
			clause = NotEqual(member, Constant(value))
		} else {
			clause = Equal(member, Constant(value))
		}
		if body == nil {
			body = clause
		} else if negate {
			body = AndExpr(body, clause)
		} else {
			body = OrExpr(body, clause)
		}
	}
	return Predicate[T]{param: param, body: body}, nil
}

// Like builds a predicate matching items whose string field contains any of
// the given patterns. An empty pattern list yields a predicate that matches
// nothing.
func Like[T any](field string, patterns ...string) (Predicate[T], error) {
	return containsPredicate[T](field, patterns, false)
}

// NotLike builds a predicate matching items whose string field contains none
// of the given patterns. An empty pattern list yields a predicate that
// matches everything.
func NotLike[T any](field string, patterns ...string) (Predicate[T], error) {
	return containsPredicate[T](field, patterns, true)
}

func containsPredicate[T any](field string, patterns []string, negate bool) (Predicate[T], error) {
	prop, err := resolveField[T](field)
	if err != nil {
		return Predicate[T]{}, err
	}
	if prop.Type.Kind() != reflect.String {
		return Predicate[T]{}, &ExprError{Op: "like", Member: field, Err: ErrNotStringMember}
	}

	param := NewParameter[T]("it")
	if len(patterns) == 0 {
		return Predicate[T]{param: param, body: Constant(negate)}, nil
	}

	member := Field(param, field)
	var body Expr
	for _, pattern := range patterns {
		var clause Expr = Contains(member, Constant(pattern))
		if negate {
			clause = Not(clause)
		}
		if body == nil {
			body = clause
		} else if negate {
			body = AndExpr(body, clause)
		} else {
			body = OrExpr(body, clause)
		}
	}
	return Predicate[T]{param: param, body: body}, nil
}

func resolveField[T any](field string) (*typemeta.PropertyMetadata, error) {
	meta, err := typemeta.Analyze(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	prop, ok := meta.Lookup(field)
	if !ok {
		return nil, &ExprError{Op: "resolve", Member: field, Err: ErrUnknownMember}
	}
	return prop, nil
}

// Filter evaluates the predicate against every item and returns those that
// match. The result slice is freshly allocated.
func Filter[T any](items []T, p Predicate[T]) ([]T, error) {
	evalE, err := p.FuncE()
	if err != nil {
		return nil, err
	}
	matched := make([]T, 0, len(items))
	for _, item := range items {
		ok, err := evalE(item)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, item)
		}
	}
	return matched, nil
}
