package querykit

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type gormEmployee struct {
	ID     uint `gorm:"primaryKey"`
	Name   string
	Age    int
	Salary float64
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&gormEmployee{}))

	seed := []gormEmployee{
		{Name: "Ada", Age: 36, Salary: 98000},
		{Name: "Ben", Age: 24, Salary: 52000},
		{Name: "Cam", Age: 45, Salary: 76000},
	}
	require.NoError(t, db.Create(&seed).Error)
	return db
}

func TestApplyExprFiltersRows(t *testing.T) {
	db := openTestDB(t)

	it := NewParameter[gormEmployee]("it")
	expr := GreaterThan(Field(it, "Age"), Constant(30))

	query, err := ApplyExpr(db.Model(&gormEmployee{}), expr)
	require.NoError(t, err)

	var rows []gormEmployee
	require.NoError(t, query.Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Greater(t, row.Age, 30)
	}
}

func TestApplyExprLogicalCombination(t *testing.T) {
	db := openTestDB(t)

	it := NewParameter[gormEmployee]("it")
	expr := AndExpr(
		GreaterThan(Field(it, "Age"), Constant(30)),
		LessThan(Field(it, "Salary"), Constant(90000.0)),
	)

	query, err := ApplyExpr(db.Model(&gormEmployee{}), expr)
	require.NoError(t, err)

	var rows []gormEmployee
	require.NoError(t, query.Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, "Cam", rows[0].Name)
}

func TestApplyExprContains(t *testing.T) {
	db := openTestDB(t)

	it := NewParameter[gormEmployee]("it")
	expr := Contains(Field(it, "Name"), Constant("a"))

	query, err := ApplyExpr(db.Model(&gormEmployee{}), expr)
	require.NoError(t, err)

	var rows []gormEmployee
	require.NoError(t, query.Find(&rows).Error)
	// SQLite LIKE is case-insensitive for ASCII, so Ada matches too.
	require.Len(t, rows, 2)
}

func TestApplyPredicateRunsProjectedPredicate(t *testing.T) {
	db := openTestDB(t)

	type visitor struct {
		Name string
		Age  int
	}
	p, err := Where[visitor](func(it *ParameterExpr) Expr {
		return GreaterThanOrEqual(Field(it, "Age"), Constant(36))
	})
	require.NoError(t, err)

	projected, err := Project[gormEmployee](p)
	require.NoError(t, err)

	query, err := ApplyPredicate(db.Model(&gormEmployee{}), projected)
	require.NoError(t, err)

	var rows []gormEmployee
	require.NoError(t, query.Find(&rows).Error)
	require.Len(t, rows, 2)
}

func TestApplyExprNeutralizedConditionMatchesAll(t *testing.T) {
	db := openTestDB(t)

	query, err := ApplyExpr(db.Model(&gormEmployee{}), Constant(true))
	require.NoError(t, err)

	var count int64
	require.NoError(t, query.Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func TestApplyExprNilArguments(t *testing.T) {
	db := openTestDB(t)

	_, err := ApplyExpr(nil, Constant(true))
	require.ErrorIs(t, err, ErrNilQuery)

	_, err = ApplyExpr(db, nil)
	require.ErrorIs(t, err, ErrNilExpression)
}

func TestApplyPredicateNilPredicate(t *testing.T) {
	db := openTestDB(t)

	var p Predicate[gormEmployee]
	_, err := ApplyPredicate(db, p)
	require.ErrorIs(t, err, ErrNilPredicate)
}
