// Package querykit provides composable boolean predicate expression trees
// over Go structs, together with collection extensions: membership and
// substring predicates, outer joins, symmetric set reconciliation, and map
// merging.
//
// Predicates are immutable trees with exactly one free parameter. They can
// be combined (And/Or/Equal/NotEqual), projected onto a structurally
// different type by name-based member re-binding, compiled into plain
// func(T) bool closures for in-memory filtering, or rendered into SQL
// conditions for a GORM query.
package querykit

import "reflect"

// Expr represents a node in a predicate expression tree.
// Nodes are immutable; rewriting always produces new nodes.
type Expr interface {
	exprNode()
}

// BinaryOperator identifies a binary logical or comparison operation.
type BinaryOperator string

// Binary operators.
const (
	OpAnd                BinaryOperator = "and"
	OpOr                 BinaryOperator = "or"
	OpEqual              BinaryOperator = "eq"
	OpNotEqual           BinaryOperator = "ne"
	OpGreaterThan        BinaryOperator = "gt"
	OpGreaterThanOrEqual BinaryOperator = "ge"
	OpLessThan           BinaryOperator = "lt"
	OpLessThanOrEqual    BinaryOperator = "le"
	OpContains           BinaryOperator = "contains"
)

// UnaryOperator identifies a unary operation.
type UnaryOperator string

// Unary operators.
const (
	OpNot UnaryOperator = "not"
	// OpConvert marks a value conversion wrapper (e.g. a numeric or enum
	// cast around a member access). Evaluation passes the operand value
	// through unchanged; comparison handles kind promotion.
	OpConvert UnaryOperator = "convert"
)

// ParameterExpr represents the free parameter of a predicate, bound to one
// input value at evaluation time.
type ParameterExpr struct {
	Name string
	Type reflect.Type
}

func (e *ParameterExpr) exprNode() {}

// MemberExpr represents access to a named property of the target expression.
type MemberExpr struct {
	Target Expr
	Name   string
}

func (e *MemberExpr) exprNode() {}

// BinaryExpr represents a logical combination (e.g. A and B) or a
// comparison (e.g. Age gt 30).
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOperator
	Right Expr
}

func (e *BinaryExpr) exprNode() {}

// UnaryExpr represents a unary operation (e.g. not Active).
type UnaryExpr struct {
	Op      UnaryOperator
	Operand Expr
}

func (e *UnaryExpr) exprNode() {}

// ConstantExpr represents a literal value.
type ConstantExpr struct {
	Value interface{}
}

func (e *ConstantExpr) exprNode() {}

// NewParameter creates a parameter expression for type T.
func NewParameter[T any](name string) *ParameterExpr {
	return &ParameterExpr{Name: name, Type: reflect.TypeOf((*T)(nil)).Elem()}
}

// Field creates a member access on the target expression.
func Field(target Expr, name string) *MemberExpr {
	return &MemberExpr{Target: target, Name: name}
}

// Constant creates a literal expression.
func Constant(value interface{}) *ConstantExpr {
	return &ConstantExpr{Value: value}
}

// Equal creates an equality comparison.
func Equal(left, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: OpEqual, Right: right}
}

// NotEqual creates an inequality comparison.
func NotEqual(left, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: OpNotEqual, Right: right}
}

// GreaterThan creates a greater-than comparison.
func GreaterThan(left, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: OpGreaterThan, Right: right}
}

// GreaterThanOrEqual creates a greater-than-or-equal comparison.
func GreaterThanOrEqual(left, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: OpGreaterThanOrEqual, Right: right}
}

// LessThan creates a less-than comparison.
func LessThan(left, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: OpLessThan, Right: right}
}

// LessThanOrEqual creates a less-than-or-equal comparison.
func LessThanOrEqual(left, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: OpLessThanOrEqual, Right: right}
}

// Contains creates a substring containment test.
func Contains(left, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: OpContains, Right: right}
}

// AndExpr combines two boolean expressions with logical AND.
func AndExpr(left, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: OpAnd, Right: right}
}

// OrExpr combines two boolean expressions with logical OR.
func OrExpr(left, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: OpOr, Right: right}
}

// Not negates a boolean expression.
func Not(operand Expr) *UnaryExpr {
	return &UnaryExpr{Op: OpNot, Operand: operand}
}

// Convert wraps an expression in a conversion marker.
func Convert(operand Expr) *UnaryExpr {
	return &UnaryExpr{Op: OpConvert, Operand: operand}
}

// isLogical reports whether op combines two boolean operands.
func (op BinaryOperator) isLogical() bool {
	return op == OpAnd || op == OpOr
}

// isConstant reports whether e is a literal node.
func isConstant(e Expr) bool {
	_, ok := e.(*ConstantExpr)
	return ok
}

// trueConstant returns the neutral constant used when a member comparison
// cannot be mapped onto a destination type.
func trueConstant() *ConstantExpr {
	return &ConstantExpr{Value: true}
}
