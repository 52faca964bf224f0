package querykit

import (
	"context"
	"reflect"

	"github.com/querykit/go-querykit/internal/typemeta"
)

// Project rewrites a predicate over Src into an equivalent predicate over
// Dst. The parameter is re-bound to a fresh Dst parameter and member
// accesses are re-resolved by name against Dst's properties. A member
// absent on Dst does not fail the projection: the comparison it feeds is
// neutralized to constant true, so composite predicates degrade gracefully
// when projected onto a narrower type.
//
// The mapping is structural and name-based only. Same-named properties of
// incompatible types pass projection unchecked; a mismatch surfaces when
// the projected predicate is compiled or evaluated.
func Project[Dst any, Src any](p Predicate[Src]) (Predicate[Dst], error) {
	if p.body == nil || p.param == nil {
		return Predicate[Dst]{}, ErrNilPredicate
	}

	dstType := reflect.TypeOf((*Dst)(nil)).Elem()
	param := &ParameterExpr{Name: p.param.Name, Type: dstType}

	cfg := obs()
	ctx, span := cfg.Tracer().StartProjection(context.Background(), p.param.Type.String(), dstType.String())
	defer span.End()

	body, neutralized, err := projectExpr(p.body, param)
	if err != nil {
		cfg.Tracer().RecordError(span, err)
		cfg.Metrics().RecordError(ctx, "project")
		return Predicate[Dst]{}, err
	}
	if body == nil {
		return Predicate[Dst]{}, &ExprError{Op: "project", Err: ErrEmptyProjection}
	}

	cfg.Metrics().RecordProjection(ctx, p.param.Type.String(), dstType.String(), neutralized)

	return Predicate[Dst]{param: param, body: body}, nil
}

// ProjectExpr rewrites an expression onto the target parameter's type. The
// target parameter replaces every parameter node in the tree.
func ProjectExpr(e Expr, target *ParameterExpr) (Expr, error) {
	if e == nil || target == nil {
		return nil, ErrNilExpression
	}
	out, _, err := projectExpr(e, target)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &ExprError{Op: "project", Err: ErrEmptyProjection}
	}
	return out, nil
}

func projectExpr(e Expr, target *ParameterExpr) (Expr, int, error) {
	meta, err := typemeta.Analyze(target.Type)
	if err != nil {
		return nil, 0, err
	}
	pr := &projector{param: target, meta: meta}
	out := pr.rewrite(e)
	return out, pr.neutralized, nil
}

// projector walks a predicate tree and re-binds it onto a new parameter
// type. It implements the neutralization policy: an unmappable member
// comparison becomes vacuously true instead of failing the projection.
type projector struct {
	param       *ParameterExpr
	meta        *typemeta.TypeMetadata
	neutralized int
}

func (pr *projector) rewrite(e Expr) Expr {
	switch n := e.(type) {
	case *ParameterExpr:
		return pr.param

	case *ConstantExpr:
		return n

	case *MemberExpr:
		if !pr.meta.HasProperty(n.Name) {
			pr.neutralized++
			return trueConstant()
		}
		target := pr.rewrite(n.Target)
		if target == n.Target {
			return n
		}
		return &MemberExpr{Target: target, Name: n.Name}

	case *UnaryExpr:
		operand := pr.rewrite(n.Operand)
		if operand == n.Operand {
			return n
		}
		return &UnaryExpr{Op: n.Op, Operand: operand}

	case *BinaryExpr:
		return pr.rewriteBinary(n)

	default:
		return e
	}
}

func (pr *projector) rewriteBinary(n *BinaryExpr) Expr {
	// Equality nodes collapse wholesale when either operand is a member
	// access (possibly conversion-wrapped) that the destination type lacks.
	if n.Op == OpEqual || n.Op == OpNotEqual {
		if pr.missingMember(n.Left) || pr.missingMember(n.Right) {
			pr.neutralized++
			return trueConstant()
		}
	}

	left := pr.rewrite(n.Left)
	right := pr.rewrite(n.Right)

	leftCollapsed := isConstant(left) && !isConstant(n.Left)
	rightCollapsed := isConstant(right) && !isConstant(n.Right)

	switch {
	case leftCollapsed && rightCollapsed:
		// Both operands turned constant: keep the combined node unreduced.
		return &BinaryExpr{Left: left, Op: n.Op, Right: right}
	case leftCollapsed:
		// The operator is discarded and the live operand stands alone.
		return right
	case rightCollapsed:
		return left
	}

	if left == n.Left && right == n.Right {
		return n
	}
	return &BinaryExpr{Left: left, Op: n.Op, Right: right}
}

// missingMember reports whether e is a direct member access, or a
// unary-wrapped member access (e.g. a numeric/enum cast), naming a property
// the destination type does not have.
func (pr *projector) missingMember(e Expr) bool {
	switch n := e.(type) {
	case *MemberExpr:
		return !pr.meta.HasProperty(n.Name)
	case *UnaryExpr:
		if m, ok := n.Operand.(*MemberExpr); ok {
			return !pr.meta.HasProperty(m.Name)
		}
	}
	return false
}
