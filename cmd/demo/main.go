package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	querykit "github.com/querykit/go-querykit"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Person struct {
	ID   uint `gorm:"primaryKey"`
	Name string
	Age  int
}

type Employee struct {
	ID     uint `gorm:"primaryKey"`
	Name   string
	Age    int
	Salary float64
}

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&Person{}, &Employee{}); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	people := []Person{
		{Name: "Alice", Age: 34},
		{Name: "Bob", Age: 19},
		{Name: "Carol", Age: 52},
	}
	employees := []Employee{
		{Name: "Alice", Age: 34, Salary: 85000},
		{Name: "Dave", Age: 41, Salary: 72000},
	}
	if err := db.Create(&people).Error; err != nil {
		logger.Error("failed to seed people", "error", err)
		os.Exit(1)
	}
	if err := db.Create(&employees).Error; err != nil {
		logger.Error("failed to seed employees", "error", err)
		os.Exit(1)
	}

	// Build a predicate over Person and evaluate it in memory.
	adults, err := querykit.Where[Person](func(it *querykit.ParameterExpr) querykit.Expr {
		return querykit.GreaterThanOrEqual(querykit.Field(it, "Age"), querykit.Constant(21))
	})
	if err != nil {
		logger.Error("failed to build age predicate", "error", err)
		os.Exit(1)
	}
	named, err := querykit.Like[Person]("Name", "a", "o")
	if err != nil {
		logger.Error("failed to build name predicate", "error", err)
		os.Exit(1)
	}
	combined, err := adults.And(named)
	if err != nil {
		logger.Error("failed to combine predicates", "error", err)
		os.Exit(1)
	}

	matched, err := querykit.Filter(people, combined)
	if err != nil {
		logger.Error("in-memory filter failed", "error", err)
		os.Exit(1)
	}
	for _, p := range matched {
		logger.Info("matched in memory", "name", p.Name, "age", p.Age)
	}

	// Rebind the same predicate to Employee; members missing on the
	// destination type drop out of the condition.
	forEmployees, err := querykit.Project[Employee](combined)
	if err != nil {
		logger.Error("projection failed", "error", err)
		os.Exit(1)
	}

	query, err := querykit.ApplyPredicate(db.Model(&Employee{}), forEmployees)
	if err != nil {
		logger.Error("failed to apply predicate", "error", err)
		os.Exit(1)
	}

	var rows []Employee
	if err := query.Find(&rows).Error; err != nil {
		logger.Error("query failed", "error", err)
		os.Exit(1)
	}
	for _, e := range rows {
		logger.Info("matched in database", "name", e.Name, "age", e.Age, "salary", e.Salary)
	}
}
