package querykit

import (
	"context"

	"gorm.io/gorm"
)

// ApplyExpr renders the expression as a WHERE condition and attaches it to
// the GORM query. The query is returned with the condition added; nothing is
// executed.
func ApplyExpr(db *gorm.DB, e Expr) (*gorm.DB, error) {
	return ApplyExprContext(context.Background(), db, e)
}

// ApplyExprContext is ApplyExpr with a context for tracing.
func ApplyExprContext(ctx context.Context, db *gorm.DB, e Expr) (*gorm.DB, error) {
	if db == nil {
		return nil, ErrNilQuery
	}
	if e == nil {
		return nil, ErrNilExpression
	}

	dialect := databaseDialect(db)

	cfg := obs()
	ctx, span := cfg.Tracer().StartApply(ctx, dialect)
	defer span.End()

	query, args, err := ToSQL(dialect, e)
	if err != nil {
		cfg.Tracer().RecordError(span, err)
		cfg.Metrics().RecordError(ctx, "apply")
		return nil, err
	}

	return db.Where(query, args...), nil
}

// ApplyPredicate attaches the predicate's condition to the GORM query.
func ApplyPredicate[T any](db *gorm.DB, p Predicate[T]) (*gorm.DB, error) {
	if p.body == nil {
		return nil, ErrNilPredicate
	}
	return ApplyExpr(db, p.body)
}

func databaseDialect(db *gorm.DB) string {
	if db.Dialector != nil {
		return db.Dialector.Name()
	}
	return "sqlite"
}
