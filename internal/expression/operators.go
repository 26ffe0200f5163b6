// internal/expression/operators.go
package expression

import (
	"strings"
)

/*
 * Operator comparison logic.
 *
 * Implements the simple-mode query builder operators. Names are matched
 * case-insensitively, the way the workflow expression language resolves
 * function names.
 *
 * Operators:
 *   - equals/notequals: Equality with numeric tolerance for int/float mixing
 *   - greater/greaterorequals/less/lessorequals: Numeric comparison only
 *   - contains/notcontains: Substring, or element membership for arrays
 *   - startswith/notstartswith/endswith/notendswith: String prefix/suffix
 *
 * Ordering operators coerce both sides to numbers first (see evaluate.go);
 * Compare itself never fails and returns false for incomparable types.
 */

// Operator is a normalized (lower-case) operator name.
type Operator string

const (
	OpEquals          Operator = "equals"
	OpNotEquals       Operator = "notequals"
	OpGreater         Operator = "greater"
	OpGreaterOrEquals Operator = "greaterorequals"
	OpLess            Operator = "less"
	OpLessOrEquals    Operator = "lessorequals"
	OpContains        Operator = "contains"
	OpNotContains     Operator = "notcontains"
	OpStartsWith      Operator = "startswith"
	OpNotStartsWith   Operator = "notstartswith"
	OpEndsWith        Operator = "endswith"
	OpNotEndsWith     Operator = "notendswith"
)

var knownOperators = map[Operator]bool{
	OpEquals: true, OpNotEquals: true,
	OpGreater: true, OpGreaterOrEquals: true, OpLess: true, OpLessOrEquals: true,
	OpContains: true, OpNotContains: true,
	OpStartsWith: true, OpNotStartsWith: true, OpEndsWith: true, OpNotEndsWith: true,
}

// LookupOperator normalizes name and reports whether it is a known operator.
func LookupOperator(name string) (Operator, bool) {
	op := Operator(strings.ToLower(name))
	return op, knownOperators[op]
}

// isOrdering reports whether op needs numeric operands.
func (op Operator) isOrdering() bool {
	switch op {
	case OpGreater, OpGreaterOrEquals, OpLess, OpLessOrEquals:
		return true
	default:
		return false
	}
}

// Compare applies the operator to compare value against target.
// Both values should already be coerced to compatible types.
func Compare(op Operator, value, target any) bool {
	switch op {
	case OpEquals:
		return compareEqual(value, target)
	case OpNotEquals:
		return !compareEqual(value, target)
	case OpLess:
		return compareNumeric(value, target) < 0
	case OpLessOrEquals:
		return compareNumeric(value, target) <= 0
	case OpGreater:
		return compareNumeric(value, target) > 0
	case OpGreaterOrEquals:
		return compareNumeric(value, target) >= 0
	case OpContains:
		return compareContains(value, target)
	case OpNotContains:
		return !compareContains(value, target)
	case OpStartsWith:
		return compareStrings(value, target, strings.HasPrefix)
	case OpNotStartsWith:
		return !compareStrings(value, target, strings.HasPrefix)
	case OpEndsWith:
		return compareStrings(value, target, strings.HasSuffix)
	case OpNotEndsWith:
		return !compareStrings(value, target, strings.HasSuffix)
	default:
		return false
	}
}

// compareEqual performs equality comparison with numeric type coercion.
// Handles float64/int/int64 mixing for JSON compatibility.
func compareEqual(a, b any) bool {
	if na, nb, ok := asNumbers(a, b); ok {
		return na == nb
	}
	switch a.(type) {
	case map[string]any, []any:
		// not comparable with ==
		return false
	}
	switch b.(type) {
	case map[string]any, []any:
		return false
	}
	return a == b
}

// compareNumeric performs three-way numeric comparison (-1/0/1).
// Returns 0 for incomparable types.
func compareNumeric(a, b any) int {
	na, nb, ok := asNumbers(a, b)
	if !ok {
		return 0
	}
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}

// asNumbers attempts to convert both values to float64 for numeric comparison.
func asNumbers(a, b any) (float64, float64, bool) {
	na, oka := toFloat64(a)
	nb, okb := toFloat64(b)
	return na, nb, oka && okb
}

// toFloat64 converts value to float64 if it's a numeric type.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// compareContains checks substring containment for strings and element
// membership (equality semantics) for arrays.
func compareContains(container, item any) bool {
	switch c := container.(type) {
	case string:
		s, ok := item.(string)
		return ok && strings.Contains(c, s)
	case []any:
		for _, elem := range c {
			if compareEqual(elem, item) {
				return true
			}
		}
		return false
	case map[string]any:
		key, ok := item.(string)
		if !ok {
			return false
		}
		_, found := c[key]
		return found
	default:
		return false
	}
}

// compareStrings applies fn when both values are strings.
// Returns false for non-string types.
func compareStrings(value, target any, fn func(s, affix string) bool) bool {
	vs, ok1 := value.(string)
	ts, ok2 := target.(string)
	if !ok1 || !ok2 {
		return false
	}
	return fn(vs, ts)
}
