package querykit

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// writeExpr streams a canonical encoding of the tree into the digest. Two
// structurally identical trees (same shapes, operators, member names, and
// constant values) produce the same encoding, which keys the
// compiled-predicate cache.
func writeExpr(d *xxhash.Digest, e Expr) {
	switch n := e.(type) {
	case nil:
		d.WriteString("nil|")
	case *ParameterExpr:
		fmt.Fprintf(d, "param|%s|%v|", n.Name, n.Type)
	case *MemberExpr:
		fmt.Fprintf(d, "member|%s|", n.Name)
		writeExpr(d, n.Target)
	case *ConstantExpr:
		fmt.Fprintf(d, "const|%T|%v|", n.Value, n.Value)
	case *UnaryExpr:
		fmt.Fprintf(d, "unary|%s|", n.Op)
		writeExpr(d, n.Operand)
	case *BinaryExpr:
		fmt.Fprintf(d, "binary|%s|", n.Op)
		writeExpr(d, n.Left)
		writeExpr(d, n.Right)
	default:
		fmt.Fprintf(d, "expr|%T|", e)
	}
}

// Fingerprint returns the canonical hash of the predicate's parameter type
// and body. Predicates with equal fingerprints compile to the same
// function.
func (p Predicate[T]) Fingerprint() uint64 {
	d := xxhash.New()
	if p.param != nil {
		fmt.Fprintf(d, "pred|%v|", p.param.Type)
	}
	writeExpr(d, p.body)
	return d.Sum64()
}
