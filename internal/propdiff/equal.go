package propdiff

import (
	"math"
	"reflect"
)

// Equal reports whether a and b hold the same configuration value.
// Numbers compare by value across integer and float representations,
// sequences compare as sets, and trees compare key by key.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if af, aInt, ok := numeric(a); ok {
		bf, bInt, ok := numeric(b)
		if !ok {
			return false
		}
		if aInt != nil && bInt != nil {
			return *aInt == *bInt
		}
		return af == bf
	}

	if at, ok := asTree(a); ok {
		bt, ok := asTree(b)
		if !ok || len(at) != len(bt) {
			return false
		}
		for key, av := range at {
			bv, present := bt[key]
			if !present || !Equal(av, bv) {
				return false
			}
		}
		return true
	}

	if as, ok := asSequence(a); ok {
		bs, ok := asSequence(b)
		if !ok {
			return false
		}
		return SetEqual(as, bs)
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return reflect.DeepEqual(a, b)
}

// SetEqual reports whether every element of a is present in b and every
// element of b is present in a. Order and multiplicity are ignored, so
// [1 1 2] and [2 1] are equal. Membership is a linear scan using Equal;
// elements need not be hashable.
func SetEqual(a, b []any) bool {
	return containsAll(a, b) && containsAll(b, a)
}

func containsAll(haystack, needles []any) bool {
	for _, needle := range needles {
		if !contains(haystack, needle) {
			return false
		}
	}
	return true
}

func contains(haystack []any, needle any) bool {
	for _, item := range haystack {
		if Equal(item, needle) {
			return true
		}
	}
	return false
}

// numeric returns v as a float64 and, for integer kinds, also as an int64.
func numeric(v any) (float64, *int64, bool) {
	var i int64
	switch n := v.(type) {
	case int64:
		i = n
	case int:
		i = int64(n)
	case int8:
		i = int64(n)
	case int16:
		i = int64(n)
	case int32:
		i = int64(n)
	case uint8:
		i = int64(n)
	case uint16:
		i = int64(n)
	case uint32:
		i = int64(n)
	case uint:
		if uint64(n) > math.MaxInt64 {
			return float64(n), nil, true
		}
		i = int64(n)
	case uint64:
		if n > math.MaxInt64 {
			return float64(n), nil, true
		}
		i = int64(n)
	case float32:
		return float64(n), nil, true
	case float64:
		return n, nil, true
	default:
		return 0, nil, false
	}
	return float64(i), &i, true
}
