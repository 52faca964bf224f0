package querykit

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// compareValues orders two runtime values. Pointers and interfaces are
// dereferenced first; nil sorts before any value. Values of the same kind
// family compare directly; mixed numeric kinds are promoted through
// decimal so an int field can be compared against a float or decimal
// constant without loss.
func compareValues(left, right reflect.Value) (int, error) {
	leftValue, leftNil := normalizeValue(left)
	rightValue, rightNil := normalizeValue(right)

	switch {
	case leftNil && rightNil:
		return 0, nil
	case leftNil:
		return -1, nil
	case rightNil:
		return 1, nil
	}

	if leftValue.Kind() != rightValue.Kind() {
		leftDec, leftOK := toDecimal(leftValue)
		rightDec, rightOK := toDecimal(rightValue)
		if leftOK && rightOK {
			return leftDec.Cmp(rightDec), nil
		}
		return 0, fmt.Errorf("%w: %s and %s", ErrTypeMismatch, leftValue.Kind(), rightValue.Kind())
	}

	switch leftValue.Kind() {
	case reflect.String:
		leftString := leftValue.String()
		rightString := rightValue.String()
		switch {
		case leftString < rightString:
			return -1, nil
		case leftString > rightString:
			return 1, nil
		default:
			return 0, nil
		}
	case reflect.Bool:
		leftBool := leftValue.Bool()
		rightBool := rightValue.Bool()
		switch {
		case leftBool == rightBool:
			return 0, nil
		case !leftBool && rightBool:
			return -1, nil
		default:
			return 1, nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		leftInt := leftValue.Int()
		rightInt := rightValue.Int()
		switch {
		case leftInt < rightInt:
			return -1, nil
		case leftInt > rightInt:
			return 1, nil
		default:
			return 0, nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		leftUint := leftValue.Uint()
		rightUint := rightValue.Uint()
		switch {
		case leftUint < rightUint:
			return -1, nil
		case leftUint > rightUint:
			return 1, nil
		default:
			return 0, nil
		}
	case reflect.Float32, reflect.Float64:
		leftFloat := leftValue.Float()
		rightFloat := rightValue.Float()
		switch {
		case leftFloat < rightFloat:
			return -1, nil
		case leftFloat > rightFloat:
			return 1, nil
		default:
			return 0, nil
		}
	case reflect.Struct:
		return compareStructValues(leftValue, rightValue)
	case reflect.Array:
		if leftValue.Type() == uuidType && rightValue.Type() == uuidType {
			leftID := leftValue.Interface().(uuid.UUID)
			rightID := rightValue.Interface().(uuid.UUID)
			return bytes.Compare(leftID[:], rightID[:]), nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrTypeMismatch, leftValue.Type())
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	uuidType    = reflect.TypeOf(uuid.UUID{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

func compareStructValues(left, right reflect.Value) (int, error) {
	if left.Type() != right.Type() {
		return 0, fmt.Errorf("%w: %s and %s", ErrTypeMismatch, left.Type(), right.Type())
	}

	switch left.Type() {
	case timeType:
		leftTime := left.Interface().(time.Time)
		rightTime := right.Interface().(time.Time)
		switch {
		case leftTime.Before(rightTime):
			return -1, nil
		case leftTime.After(rightTime):
			return 1, nil
		default:
			return 0, nil
		}
	case decimalType:
		leftDec := left.Interface().(decimal.Decimal)
		rightDec := right.Interface().(decimal.Decimal)
		return leftDec.Cmp(rightDec), nil
	}

	return 0, fmt.Errorf("%w: %s", ErrTypeMismatch, left.Type())
}

// toDecimal converts any numeric value (including decimal.Decimal itself)
// to a decimal for exact cross-kind comparison. NaN and infinities have no
// decimal form and report false.
func toDecimal(v reflect.Value) (decimal.Decimal, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromUint64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(f), true
	case reflect.Struct:
		if v.Type() == decimalType {
			return v.Interface().(decimal.Decimal), true
		}
	}
	return decimal.Decimal{}, false
}

// equalValues reports whether two runtime values are equal under the same
// normalization rules as compareValues.
func equalValues(left, right reflect.Value) (bool, error) {
	cmp, err := compareValues(left, right)
	if err != nil {
		return false, err
	}
	return cmp == 0, nil
}

// normalizeValue dereferences pointers and interfaces, reporting nil-ness.
func normalizeValue(value reflect.Value) (reflect.Value, bool) {
	current := value
	for current.Kind() == reflect.Pointer || current.Kind() == reflect.Interface {
		if current.IsNil() {
			return reflect.Value{}, true
		}
		current = current.Elem()
	}

	if !current.IsValid() {
		return reflect.Value{}, true
	}

	return current, false
}
