package querykit

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type order struct {
	ID      uuid.UUID
	Ref     string
	Placed  time.Time
	Total   decimal.Decimal
	Qty     int
	Weight  float64
	Shipped bool
}

func whereOrder(t *testing.T, build func(it *ParameterExpr) Expr) Predicate[order] {
	t.Helper()
	p, err := Where[order](build)
	if err != nil {
		t.Fatalf("Where returned error: %v", err)
	}
	return p
}

func evalOrder(t *testing.T, p Predicate[order], o order) bool {
	t.Helper()
	match, err := p.FuncE()
	if err != nil {
		t.Fatalf("FuncE returned error: %v", err)
	}
	ok, err := match(o)
	if err != nil {
		t.Fatalf("evaluation returned error: %v", err)
	}
	return ok
}

func TestFuncComparesMixedNumericKinds(t *testing.T) {
	// Qty is int, the constant is float64; comparison promotes both.
	p := whereOrder(t, func(it *ParameterExpr) Expr {
		return GreaterThan(Field(it, "Qty"), Constant(2.5))
	})

	if !evalOrder(t, p, order{Qty: 3}) {
		t.Error("expected 3 > 2.5")
	}
	if evalOrder(t, p, order{Qty: 2}) {
		t.Error("expected 2 > 2.5 to be false")
	}
}

func TestFuncComparesFloatField(t *testing.T) {
	p := whereOrder(t, func(it *ParameterExpr) Expr {
		return LessThanOrEqual(Field(it, "Weight"), Constant(10))
	})

	if !evalOrder(t, p, order{Weight: 10.0}) {
		t.Error("expected 10.0 <= 10")
	}
	if evalOrder(t, p, order{Weight: 10.5}) {
		t.Error("expected 10.5 <= 10 to be false")
	}
}

func TestFuncComparesDecimal(t *testing.T) {
	p := whereOrder(t, func(it *ParameterExpr) Expr {
		return GreaterThanOrEqual(Field(it, "Total"), Constant(decimal.NewFromInt(100)))
	})

	if !evalOrder(t, p, order{Total: decimal.NewFromInt(100)}) {
		t.Error("expected total 100 to match")
	}
	if evalOrder(t, p, order{Total: decimal.NewFromFloat(99.99)}) {
		t.Error("expected total 99.99 not to match")
	}
}

func TestFuncComparesTime(t *testing.T) {
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	p := whereOrder(t, func(it *ParameterExpr) Expr {
		return LessThan(Field(it, "Placed"), Constant(cutoff))
	})

	if !evalOrder(t, p, order{Placed: cutoff.Add(-time.Hour)}) {
		t.Error("expected an order placed before the cutoff to match")
	}
	if evalOrder(t, p, order{Placed: cutoff.Add(time.Hour)}) {
		t.Error("expected an order placed after the cutoff not to match")
	}
}

func TestFuncComparesUUID(t *testing.T) {
	id := uuid.MustParse("a2b7f0f4-5cde-4b1c-9a52-7b6b4e1f8a33")
	p := whereOrder(t, func(it *ParameterExpr) Expr {
		return Equal(Field(it, "ID"), Constant(id))
	})

	if !evalOrder(t, p, order{ID: id}) {
		t.Error("expected matching UUID to match")
	}
	if evalOrder(t, p, order{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001")}) {
		t.Error("expected a different UUID not to match")
	}
}

func TestFuncStringContains(t *testing.T) {
	p := whereOrder(t, func(it *ParameterExpr) Expr {
		return Contains(Field(it, "Ref"), Constant("2024"))
	})

	if !evalOrder(t, p, order{Ref: "ORD-2024-0042"}) {
		t.Error("expected substring match")
	}
	if evalOrder(t, p, order{Ref: "ORD-2023-0042"}) {
		t.Error("expected no substring match")
	}
}

func TestFuncContainsRejectsNonString(t *testing.T) {
	p := whereOrder(t, func(it *ParameterExpr) Expr {
		return Contains(Field(it, "Qty"), Constant("4"))
	})

	match, err := p.FuncE()
	if err != nil {
		t.Fatalf("FuncE returned error: %v", err)
	}
	if _, err := match(order{Qty: 4}); !errors.Is(err, ErrNotStringMember) {
		t.Errorf("expected ErrNotStringMember, got %v", err)
	}
}

func TestFuncNotRequiresBoolean(t *testing.T) {
	p := whereOrder(t, func(it *ParameterExpr) Expr {
		return Not(Field(it, "Qty"))
	})

	match, err := p.FuncE()
	if err != nil {
		t.Fatalf("FuncE returned error: %v", err)
	}
	if _, err := match(order{Qty: 1}); !errors.Is(err, ErrNotBoolean) {
		t.Errorf("expected ErrNotBoolean, got %v", err)
	}
}

func TestFuncNotNegates(t *testing.T) {
	p := whereOrder(t, func(it *ParameterExpr) Expr {
		return Not(Equal(Field(it, "Shipped"), Constant(true)))
	})

	if !evalOrder(t, p, order{Shipped: false}) {
		t.Error("expected an unshipped order to match")
	}
	if evalOrder(t, p, order{Shipped: true}) {
		t.Error("expected a shipped order not to match")
	}
}

func TestFuncUnknownMemberSurfacesError(t *testing.T) {
	param := NewParameter[order]("it")
	p, err := NewPredicate[order](param, Equal(Field(param, "Missing"), Constant(1)))
	if err != nil {
		t.Fatalf("NewPredicate returned error: %v", err)
	}

	match, err := p.FuncE()
	if err != nil {
		t.Fatalf("FuncE returned error: %v", err)
	}
	if _, err := match(order{}); !errors.Is(err, ErrUnknownMember) {
		t.Errorf("expected ErrUnknownMember, got %v", err)
	}

	// Func folds evaluation errors into a non-match.
	fn, err := p.Func()
	if err != nil {
		t.Fatalf("Func returned error: %v", err)
	}
	if fn(order{}) {
		t.Error("expected the erroring predicate to report false")
	}
}

func TestFuncShortCircuitsLogicalOperators(t *testing.T) {
	// The right branch references a missing member; short-circuiting must
	// keep it from being evaluated.
	param := NewParameter[order]("it")
	body := OrExpr(
		Equal(Field(param, "Shipped"), Constant(true)),
		Equal(Field(param, "Missing"), Constant(1)),
	)
	p, err := NewPredicate[order](param, body)
	if err != nil {
		t.Fatalf("NewPredicate returned error: %v", err)
	}

	match, err := p.FuncE()
	if err != nil {
		t.Fatalf("FuncE returned error: %v", err)
	}
	ok, err := match(order{Shipped: true})
	if err != nil {
		t.Fatalf("expected short-circuit to skip the failing branch, got %v", err)
	}
	if !ok {
		t.Error("expected the shipped order to match")
	}
}

func TestFuncEvaluatesMapInput(t *testing.T) {
	param := NewParameter[map[string]interface{}]("it")
	p, err := NewPredicate[map[string]interface{}](param, GreaterThan(Field(param, "score"), Constant(10)))
	if err != nil {
		t.Fatalf("NewPredicate returned error: %v", err)
	}

	match, err := p.FuncE()
	if err != nil {
		t.Fatalf("FuncE returned error: %v", err)
	}
	ok, err := match(map[string]interface{}{"score": 12})
	if err != nil {
		t.Fatalf("evaluation returned error: %v", err)
	}
	if !ok {
		t.Error("expected score 12 to match")
	}
	ok, err = match(map[string]interface{}{"score": 9})
	if err != nil {
		t.Fatalf("evaluation returned error: %v", err)
	}
	if ok {
		t.Error("expected score 9 not to match")
	}
}

func TestFingerprintStableAcrossEquivalentTrees(t *testing.T) {
	build := func(it *ParameterExpr) Expr {
		return AndExpr(
			GreaterThan(Field(it, "Qty"), Constant(2)),
			Equal(Field(it, "Shipped"), Constant(false)),
		)
	}
	first := whereOrder(t, build)
	second := whereOrder(t, build)

	if first.Fingerprint() != second.Fingerprint() {
		t.Error("expected structurally equal predicates to share a fingerprint")
	}

	other := whereOrder(t, func(it *ParameterExpr) Expr {
		return GreaterThan(Field(it, "Qty"), Constant(3))
	})
	if first.Fingerprint() == other.Fingerprint() {
		t.Error("expected different predicates to have different fingerprints")
	}
}

func TestCompiledPredicateCacheReuse(t *testing.T) {
	build := func(it *ParameterExpr) Expr {
		return GreaterThan(Field(it, "Qty"), Constant(7))
	}
	first := whereOrder(t, build)
	second := whereOrder(t, build)

	key := compileKey{paramType: first.Param().Type, hash: first.Fingerprint()}
	compiledCache.Delete(key)

	if _, err := first.FuncE(); err != nil {
		t.Fatalf("first compile returned error: %v", err)
	}
	if _, ok := compiledCache.Load(key); !ok {
		t.Fatal("expected the compiled evaluator to be cached")
	}

	// The second predicate shares the fingerprint and must evaluate
	// correctly off the shared entry.
	match, err := second.FuncE()
	if err != nil {
		t.Fatalf("FuncE returned error: %v", err)
	}
	ok2, err := match(order{Qty: 8})
	if err != nil {
		t.Fatalf("evaluation returned error: %v", err)
	}
	if !ok2 {
		t.Error("expected qty 8 to match the cached predicate")
	}
}

func TestCompareIncompatibleTypes(t *testing.T) {
	p := whereOrder(t, func(it *ParameterExpr) Expr {
		return GreaterThan(Field(it, "Ref"), Constant(5))
	})

	match, err := p.FuncE()
	if err != nil {
		t.Fatalf("FuncE returned error: %v", err)
	}
	if _, err := match(order{Ref: "abc"}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestCompareNonFiniteFloatAcrossKinds(t *testing.T) {
	// Weight is float64, the constant is int; the promotion that makes that
	// pairing comparable has no representation for NaN or infinity, so the
	// evaluation must report a mismatch instead of panicking.
	p := whereOrder(t, func(it *ParameterExpr) Expr {
		return GreaterThan(Field(it, "Weight"), Constant(10))
	})

	match, err := p.FuncE()
	if err != nil {
		t.Fatalf("FuncE returned error: %v", err)
	}
	for _, weight := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := match(order{Weight: weight}); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("weight %v: expected ErrTypeMismatch, got %v", weight, err)
		}
	}

	fn, err := p.Func()
	if err != nil {
		t.Fatalf("Func returned error: %v", err)
	}
	if fn(order{Weight: math.NaN()}) {
		t.Error("expected the NaN evaluation to report false")
	}
}

func TestCompareNonFiniteConstant(t *testing.T) {
	p := whereOrder(t, func(it *ParameterExpr) Expr {
		return LessThan(Field(it, "Qty"), Constant(math.Inf(1)))
	})

	match, err := p.FuncE()
	if err != nil {
		t.Fatalf("FuncE returned error: %v", err)
	}
	if _, err := match(order{Qty: 3}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}
