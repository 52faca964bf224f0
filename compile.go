package querykit

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/querykit/go-querykit/internal/typemeta"
)

// evalFn evaluates one expression node against the predicate's input value.
type evalFn func(item reflect.Value) (interface{}, error)

// compileKey identifies a compiled predicate in the cache.
type compileKey struct {
	paramType reflect.Type
	hash      uint64
}

// compiledCache holds evaluator chains keyed by parameter type and tree
// fingerprint. Compilation is deterministic, so a duplicate store from a
// concurrent compile is harmless.
var compiledCache sync.Map // compileKey -> evalFn

// Func materializes the predicate as a plain func(T) bool by composing
// closures over the tree; no interpreter runs at call time. Evaluation
// errors (a member missing on a nested value, or a type mismatch that
// survived projection) make the returned function report false. Use FuncE
// when those errors must be observed.
func (p Predicate[T]) Func() (func(T) bool, error) {
	evalE, err := p.FuncE()
	if err != nil {
		return nil, err
	}
	return func(item T) bool {
		ok, err := evalE(item)
		return err == nil && ok
	}, nil
}

// FuncE materializes the predicate as a func(T) (bool, error), surfacing
// evaluation errors to the caller.
func (p Predicate[T]) FuncE() (func(T) (bool, error), error) {
	if p.body == nil || p.param == nil {
		return nil, ErrNilPredicate
	}

	cfg := obs()
	ctx, span := cfg.Tracer().StartCompile(context.Background(), p.param.Type.String())
	defer span.End()

	key := compileKey{paramType: p.param.Type, hash: p.Fingerprint()}
	cacheHit := false

	var eval evalFn
	if cached, ok := compiledCache.Load(key); ok {
		eval = cached.(evalFn)
		cacheHit = true
	} else {
		compiled, err := compileExpr(p.body)
		if err != nil {
			cfg.Tracer().RecordError(span, err)
			cfg.Metrics().RecordError(ctx, "compile")
			return nil, err
		}
		eval = compiled
		compiledCache.Store(key, eval)
	}

	cfg.Metrics().RecordCompile(ctx, p.param.Type.String(), cacheHit)

	return func(item T) (bool, error) {
		out, err := eval(reflect.ValueOf(item))
		if err != nil {
			return false, err
		}
		result, ok := out.(bool)
		if !ok {
			return false, &ExprError{Op: "evaluate", Err: ErrNotBoolean}
		}
		return result, nil
	}, nil
}

// compileExpr builds the evaluator chain for a node.
func compileExpr(e Expr) (evalFn, error) {
	switch n := e.(type) {
	case *ParameterExpr:
		return func(item reflect.Value) (interface{}, error) {
			return item.Interface(), nil
		}, nil

	case *ConstantExpr:
		value := n.Value
		return func(reflect.Value) (interface{}, error) {
			return value, nil
		}, nil

	case *MemberExpr:
		return compileMember(n)

	case *UnaryExpr:
		return compileUnary(n)

	case *BinaryExpr:
		return compileBinary(n)

	default:
		return nil, &ExprError{Op: "compile", Err: ErrUnsupportedExpr}
	}
}

func compileMember(n *MemberExpr) (evalFn, error) {
	target, err := compileExpr(n.Target)
	if err != nil {
		return nil, err
	}
	name := n.Name

	return func(item reflect.Value) (interface{}, error) {
		out, err := target(item)
		if err != nil {
			return nil, err
		}

		value, isNil := normalizeValue(reflect.ValueOf(out))
		if isNil {
			return nil, &ExprError{Op: "evaluate", Member: name, Err: ErrUnknownMember}
		}

		switch value.Kind() {
		case reflect.Struct:
			meta, err := typemeta.Analyze(value.Type())
			if err != nil {
				return nil, err
			}
			prop, ok := meta.Lookup(name)
			if !ok {
				return nil, &ExprError{Op: "evaluate", Member: name, Err: ErrUnknownMember}
			}
			return meta.ValueOf(value, prop).Interface(), nil
		case reflect.Map:
			if value.Type().Key().Kind() != reflect.String {
				return nil, &ExprError{Op: "evaluate", Member: name, Err: ErrUnknownMember}
			}
			field := value.MapIndex(reflect.ValueOf(name))
			if !field.IsValid() {
				return nil, &ExprError{Op: "evaluate", Member: name, Err: ErrUnknownMember}
			}
			return field.Interface(), nil
		}

		return nil, &ExprError{Op: "evaluate", Member: name, Err: ErrUnknownMember}
	}, nil
}

func compileUnary(n *UnaryExpr) (evalFn, error) {
	operand, err := compileExpr(n.Operand)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case OpNot:
		return func(item reflect.Value) (interface{}, error) {
			out, err := operand(item)
			if err != nil {
				return nil, err
			}
			b, ok := out.(bool)
			if !ok {
				return nil, &ExprError{Op: "evaluate", Err: ErrNotBoolean}
			}
			return !b, nil
		}, nil
	case OpConvert:
		// Conversion wrappers carry no runtime behavior of their own;
		// comparison handles kind promotion.
		return operand, nil
	default:
		return nil, &ExprError{Op: "compile", Err: ErrUnsupportedExpr}
	}
}

func compileBinary(n *BinaryExpr) (evalFn, error) {
	left, err := compileExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := compileExpr(n.Right)
	if err != nil {
		return nil, err
	}

	if n.Op.isLogical() {
		and := n.Op == OpAnd
		return func(item reflect.Value) (interface{}, error) {
			lv, err := evalBool(left, item)
			if err != nil {
				return nil, err
			}
			// Short-circuit.
			if and && !lv {
				return false, nil
			}
			if !and && lv {
				return true, nil
			}
			return evalBool(right, item)
		}, nil
	}

	op := n.Op
	return func(item reflect.Value) (interface{}, error) {
		lv, err := left(item)
		if err != nil {
			return nil, err
		}
		rv, err := right(item)
		if err != nil {
			return nil, err
		}
		return applyComparison(op, lv, rv)
	}, nil
}

func evalBool(fn evalFn, item reflect.Value) (bool, error) {
	out, err := fn(item)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, &ExprError{Op: "evaluate", Err: ErrNotBoolean}
	}
	return b, nil
}

func applyComparison(op BinaryOperator, left, right interface{}) (interface{}, error) {
	if op == OpContains {
		ls, lok := left.(string)
		rs, rok := right.(string)
		if !lok || !rok {
			return nil, &ExprError{Op: "evaluate", Err: ErrNotStringMember}
		}
		return strings.Contains(ls, rs), nil
	}

	lv := reflect.ValueOf(left)
	rv := reflect.ValueOf(right)

	switch op {
	case OpEqual:
		eq, err := equalValues(lv, rv)
		if err != nil {
			return nil, err
		}
		return eq, nil
	case OpNotEqual:
		eq, err := equalValues(lv, rv)
		if err != nil {
			return nil, err
		}
		return !eq, nil
	}

	cmp, err := compareValues(lv, rv)
	if err != nil {
		return nil, err
	}

	switch op {
	case OpGreaterThan:
		return cmp > 0, nil
	case OpGreaterThanOrEqual:
		return cmp >= 0, nil
	case OpLessThan:
		return cmp < 0, nil
	case OpLessThanOrEqual:
		return cmp <= 0, nil
	default:
		return nil, &ExprError{Op: "compile", Err: ErrUnsupportedExpr}
	}
}
