package querykit

import (
	"fmt"
	"strings"
)

// ToSQL renders the expression as a WHERE condition string with ? placeholders
// and the matching argument list. The dialect selects identifier quoting;
// "postgres" and "sqlite" both use double quotes. Member names are converted
// to the snake_case column names GORM derives by default.
func ToSQL(dialect string, e Expr) (string, []interface{}, error) {
	if e == nil {
		return "", nil, ErrNilExpression
	}
	return buildCondition(dialect, e)
}

func buildCondition(dialect string, e Expr) (string, []interface{}, error) {
	switch n := e.(type) {
	case *BinaryExpr:
		if n.Op.isLogical() {
			return buildLogicalCondition(dialect, n)
		}
		return buildComparisonCondition(dialect, n)

	case *UnaryExpr:
		switch n.Op {
		case OpNot:
			inner, args, err := buildCondition(dialect, n.Operand)
			if err != nil {
				return "", nil, err
			}
			return fmt.Sprintf("NOT (%s)", inner), args, nil
		case OpConvert:
			return buildCondition(dialect, n.Operand)
		default:
			return "", nil, &ExprError{Op: "sql", Err: ErrUnsupportedExpr}
		}

	case *ConstantExpr:
		// A bare constant condition shows up when projection neutralized
		// the whole tree.
		b, ok := n.Value.(bool)
		if !ok {
			return "", nil, &ExprError{Op: "sql", Err: ErrNotBoolean}
		}
		if b {
			return "1 = 1", []interface{}{}, nil
		}
		return "1 = 0", []interface{}{}, nil

	case *MemberExpr:
		// A bare boolean column reference.
		return fmt.Sprintf("%s = ?", columnName(dialect, n.Name)), []interface{}{true}, nil

	case *ParameterExpr:
		return "", nil, &ExprError{Op: "sql", Member: n.Name, Err: ErrUnsupportedExpr}

	default:
		return "", nil, &ExprError{Op: "sql", Err: ErrUnsupportedExpr}
	}
}

func buildLogicalCondition(dialect string, n *BinaryExpr) (string, []interface{}, error) {
	leftQuery, leftArgs, err := buildCondition(dialect, n.Left)
	if err != nil {
		return "", nil, err
	}
	rightQuery, rightArgs, err := buildCondition(dialect, n.Right)
	if err != nil {
		return "", nil, err
	}

	var query string
	switch n.Op {
	case OpAnd:
		query = fmt.Sprintf("(%s) AND (%s)", leftQuery, rightQuery)
	case OpOr:
		query = fmt.Sprintf("(%s) OR (%s)", leftQuery, rightQuery)
	default:
		return "", nil, &ExprError{Op: "sql", Err: ErrUnsupportedExpr}
	}

	return query, append(leftArgs, rightArgs...), nil
}

func buildComparisonCondition(dialect string, n *BinaryExpr) (string, []interface{}, error) {
	column, err := comparisonColumn(dialect, n.Left)
	if err != nil {
		return "", nil, err
	}
	value, err := comparisonValue(n.Right)
	if err != nil {
		return "", nil, err
	}

	switch n.Op {
	case OpEqual:
		if value == nil {
			return fmt.Sprintf("%s IS NULL", column), []interface{}{}, nil
		}
		return fmt.Sprintf("%s = ?", column), []interface{}{value}, nil
	case OpNotEqual:
		if value == nil {
			return fmt.Sprintf("%s IS NOT NULL", column), []interface{}{}, nil
		}
		return fmt.Sprintf("%s != ?", column), []interface{}{value}, nil
	case OpGreaterThan:
		return fmt.Sprintf("%s > ?", column), []interface{}{value}, nil
	case OpGreaterThanOrEqual:
		return fmt.Sprintf("%s >= ?", column), []interface{}{value}, nil
	case OpLessThan:
		return fmt.Sprintf("%s < ?", column), []interface{}{value}, nil
	case OpLessThanOrEqual:
		return fmt.Sprintf("%s <= ?", column), []interface{}{value}, nil
	case OpContains:
		return fmt.Sprintf("%s LIKE ?", column), []interface{}{"%" + fmt.Sprint(value) + "%"}, nil
	default:
		return "", nil, &ExprError{Op: "sql", Err: ErrUnsupportedExpr}
	}
}

// comparisonColumn resolves the left side of a comparison to a quoted column
// reference, looking through conversion wrappers.
func comparisonColumn(dialect string, e Expr) (string, error) {
	switch n := e.(type) {
	case *MemberExpr:
		return columnName(dialect, n.Name), nil
	case *UnaryExpr:
		if n.Op == OpConvert {
			return comparisonColumn(dialect, n.Operand)
		}
		return "", &ExprError{Op: "sql", Err: ErrUnsupportedExpr}
	default:
		return "", &ExprError{Op: "sql", Err: ErrUnsupportedExpr}
	}
}

// comparisonValue resolves the right side of a comparison to a bind argument.
func comparisonValue(e Expr) (interface{}, error) {
	switch n := e.(type) {
	case *ConstantExpr:
		return n.Value, nil
	case *UnaryExpr:
		if n.Op == OpConvert {
			return comparisonValue(n.Operand)
		}
		return nil, &ExprError{Op: "sql", Err: ErrUnsupportedExpr}
	default:
		return nil, &ExprError{Op: "sql", Err: ErrUnsupportedExpr}
	}
}

func columnName(dialect string, member string) string {
	return quoteIdent(dialect, toSnakeCase(member))
}

// quoteIdent quotes an identifier with double quotes, which both the sqlite
// and postgres dialects accept.
func quoteIdent(_ string, ident string) string {
	if ident == "" {
		return ident
	}
	// Escape any embedded double quotes by doubling them
	escaped := strings.ReplaceAll(ident, "\"", "\"\"")
	return fmt.Sprintf("\"%s\"", escaped)
}

// toSnakeCase converts a Go field name to the snake_case column name GORM
// derives by default. "ProductID" becomes "product_id", not "product_i_d".
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prevRune := rune(s[i-1])
			if prevRune >= 'a' && prevRune <= 'z' {
				result.WriteRune('_')
			} else if i < len(s)-1 {
				nextRune := rune(s[i+1])
				if nextRune >= 'a' && nextRune <= 'z' {
					result.WriteRune('_')
				}
			}
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
