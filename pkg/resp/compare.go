package resp

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
)

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal
// to, or after b.
//
// Frames of different kinds are ordered by Kind. Within a kind, null
// bulk strings and aggregates sort before non-null ones, aggregates compare
// element-wise, and doubles follow cmp.Compare (NaN first, NaN equals NaN).
func Compare(a, b Frame) int {
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	switch a.kind {
	case KindSimpleString, KindSimpleError, KindBigNumber:
		return strings.Compare(a.str, b.str)
	case KindInteger, KindBoolean:
		return cmp.Compare(a.num, b.num)
	case KindDouble:
		return cmp.Compare(a.dbl, b.dbl)
	case KindNull:
		return 0
	case KindBulkString, KindBulkError:
		if c := compareNull(a, b); c != 0 || a.null {
			return c
		}
		return bytes.Compare(a.raw, b.raw)
	case KindArray, KindSet:
		if c := compareNull(a, b); c != 0 || a.null {
			return c
		}
		return slices.CompareFunc(a.elems, b.elems, Compare)
	case KindMap:
		if c := compareNull(a, b); c != 0 || a.null {
			return c
		}
		return slices.CompareFunc(a.pairs, b.pairs, comparePair)
	}
	return 0
}

// Equal reports whether a and b are the same protocol value. A null bulk
// string or aggregate is never equal to an empty one.
func Equal(a, b Frame) bool {
	return Compare(a, b) == 0
}

func comparePair(a, b Pair) int {
	if c := Compare(a.Key, b.Key); c != 0 {
		return c
	}
	return Compare(a.Value, b.Value)
}

func compareNull(a, b Frame) int {
	switch {
	case a.null == b.null:
		return 0
	case a.null:
		return -1
	default:
		return 1
	}
}
