package querykit

// Substitute returns a new tree in which every node reference-equal to
// search is replaced by replacement. Nodes are compared by identity, not by
// structure. Unaffected subtrees are returned as-is; a node is rebuilt only
// when one of its children changed, so a tree containing no occurrence of
// search comes back unchanged.
func Substitute(root, search, replacement Expr) (Expr, error) {
	if root == nil || search == nil || replacement == nil {
		return nil, ErrNilExpression
	}
	return substitute(root, search, replacement), nil
}

func substitute(node, search, replacement Expr) Expr {
	if node == search {
		return replacement
	}

	switch n := node.(type) {
	case *MemberExpr:
		target := substitute(n.Target, search, replacement)
		if target == n.Target {
			return n
		}
		return &MemberExpr{Target: target, Name: n.Name}
	case *BinaryExpr:
		left := substitute(n.Left, search, replacement)
		right := substitute(n.Right, search, replacement)
		if left == n.Left && right == n.Right {
			return n
		}
		return &BinaryExpr{Left: left, Op: n.Op, Right: right}
	case *UnaryExpr:
		operand := substitute(n.Operand, search, replacement)
		if operand == n.Operand {
			return n
		}
		return &UnaryExpr{Op: n.Op, Operand: operand}
	default:
		// Parameter and constant nodes have no children.
		return node
	}
}
