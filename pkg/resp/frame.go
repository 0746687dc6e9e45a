// Package resp implements the RESP3 wire format used by respkv.
package resp

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the protocol type of a Frame.
//
// The declaration order is significant: Compare orders frames of different
// kinds by their Kind value.
type Kind uint8

const (
	KindSimpleString Kind = iota
	KindSimpleError
	KindInteger
	KindBulkString
	KindArray
	KindNull
	KindBoolean
	KindDouble
	KindBigNumber
	KindBulkError
	KindMap
	KindSet
)

var kindNames = [...]string{
	KindSimpleString: "simple-string",
	KindSimpleError:  "simple-error",
	KindInteger:      "integer",
	KindBulkString:   "bulk-string",
	KindArray:        "array",
	KindNull:         "null",
	KindBoolean:      "boolean",
	KindDouble:       "double",
	KindBigNumber:    "big-number",
	KindBulkError:    "bulk-error",
	KindMap:          "map",
	KindSet:          "set",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Prefix returns the wire prefix byte for the kind.
func (k Kind) Prefix() byte {
	switch k {
	case KindSimpleString:
		return '+'
	case KindSimpleError:
		return '-'
	case KindInteger:
		return ':'
	case KindBulkString:
		return '$'
	case KindArray:
		return '*'
	case KindNull:
		return '_'
	case KindBoolean:
		return '#'
	case KindDouble:
		return ','
	case KindBigNumber:
		return '('
	case KindBulkError:
		return '!'
	case KindMap:
		return '%'
	case KindSet:
		return '~'
	}
	return 0
}

// Frame is one protocol value.
//
// Only the fields relevant to the frame's Kind are populated. The zero
// Frame is an empty simple string.
type Frame struct {
	kind  Kind
	null  bool    // bulk string, array, map, set
	str   string  // simple string, simple error, big number
	raw   []byte  // bulk string, bulk error
	num   int64   // integer, boolean
	dbl   float64 // double
	elems []Frame // array, set
	pairs []Pair  // map
}

// Pair is one key/value entry of a Map frame.
type Pair struct {
	Key   Frame
	Value Frame
}

// SimpleString returns a simple string frame. A simple string cannot carry
// CR or LF, so each is replaced with a space; use BulkString for arbitrary
// bytes.
func SimpleString(s string) Frame {
	return Frame{kind: KindSimpleString, str: lineText(s)}
}

// SimpleError returns a simple error frame. CR and LF are replaced with a
// space as for SimpleString.
func SimpleError(s string) Frame {
	return Frame{kind: KindSimpleError, str: lineText(s)}
}

func lineText(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, s)
}

// Integer returns an integer frame.
func Integer(n int64) Frame {
	return Frame{kind: KindInteger, num: n}
}

// BulkString returns a bulk string frame. A nil slice yields an empty,
// non-null bulk string; use NullBulkString for the null form.
func BulkString(b []byte) Frame {
	if b == nil {
		b = []byte{}
	}
	return Frame{kind: KindBulkString, raw: b}
}

// BulkText is BulkString for string payloads.
func BulkText(s string) Frame {
	return Frame{kind: KindBulkString, raw: []byte(s)}
}

// NullBulkString returns the null bulk string ($-1).
func NullBulkString() Frame {
	return Frame{kind: KindBulkString, null: true}
}

// Array returns an array frame holding elems.
func Array(elems ...Frame) Frame {
	if elems == nil {
		elems = []Frame{}
	}
	return Frame{kind: KindArray, elems: elems}
}

// NullArray returns the null array (*-1).
func NullArray() Frame {
	return Frame{kind: KindArray, null: true}
}

// Null returns the RESP3 null frame (_).
func Null() Frame {
	return Frame{kind: KindNull}
}

// Boolean returns a boolean frame.
func Boolean(b bool) Frame {
	f := Frame{kind: KindBoolean}
	if b {
		f.num = 1
	}
	return f
}

// Double returns a double frame.
func Double(v float64) Frame {
	return Frame{kind: KindDouble, dbl: v}
}

// BigNumber returns a big number frame. The digits are kept as text and
// never evaluated. They must be an optional sign followed by one or more
// decimal digits; other text encodes to bytes Decode rejects. Use
// ParseBigNumber for untrusted input.
func BigNumber(digits string) Frame {
	return Frame{kind: KindBigNumber, str: digits}
}

// ParseBigNumber returns a big number frame after checking that digits is
// an optional sign followed by decimal digits.
func ParseBigNumber(digits string) (Frame, error) {
	if err := checkBigNumber(digits); err != nil {
		return Frame{}, err
	}
	return BigNumber(digits), nil
}

func checkBigNumber(s string) error {
	digits := s
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return fmt.Errorf("%w: empty big number", ErrProtocol)
	}
	for i := 0; i < len(digits); i++ {
		if c := digits[i]; c < '0' || c > '9' {
			return fmt.Errorf("%w: invalid big number %q", ErrProtocol, s)
		}
	}
	return nil
}

// BulkError returns a bulk error frame.
func BulkError(b []byte) Frame {
	if b == nil {
		b = []byte{}
	}
	return Frame{kind: KindBulkError, raw: b}
}

// Map returns a map frame. Pairs are sorted by key; when a key repeats,
// the last pair wins.
func Map(pairs ...Pair) Frame {
	sorted := slices.Clone(pairs)
	if sorted == nil {
		sorted = []Pair{}
	}
	slices.SortStableFunc(sorted, func(a, b Pair) int {
		return Compare(a.Key, b.Key)
	})
	out := sorted[:0]
	for _, p := range sorted {
		if n := len(out); n > 0 && Equal(out[n-1].Key, p.Key) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return Frame{kind: KindMap, pairs: out}
}

// NullMap returns the null map (%-1).
func NullMap() Frame {
	return Frame{kind: KindMap, null: true}
}

// Set returns a set frame. Members are sorted and duplicates removed.
func Set(members ...Frame) Frame {
	sorted := slices.Clone(members)
	if sorted == nil {
		sorted = []Frame{}
	}
	slices.SortStableFunc(sorted, Compare)
	sorted = slices.CompactFunc(sorted, Equal)
	return Frame{kind: KindSet, elems: sorted}
}

// NullSet returns the null set (~-1).
func NullSet() Frame {
	return Frame{kind: KindSet, null: true}
}

// Kind returns the frame's protocol type.
func (f Frame) Kind() Kind { return f.kind }

// IsNull reports whether f is the null frame or a null bulk string or
// aggregate.
func (f Frame) IsNull() bool {
	return f.kind == KindNull || f.null
}

// Text returns the payload of a text-bearing frame (simple string, simple
// error, big number, bulk string, bulk error) as a string.
func (f Frame) Text() string {
	switch f.kind {
	case KindSimpleString, KindSimpleError, KindBigNumber:
		return f.str
	case KindBulkString, KindBulkError:
		return string(f.raw)
	}
	return ""
}

// Bytes returns the payload of a bulk string or bulk error. The returned
// slice must not be modified.
func (f Frame) Bytes() []byte {
	switch f.kind {
	case KindBulkString, KindBulkError:
		return f.raw
	case KindSimpleString, KindSimpleError, KindBigNumber:
		return []byte(f.str)
	}
	return nil
}

// Int returns the value of an integer frame.
func (f Frame) Int() int64 { return f.num }

// Bool returns the value of a boolean frame.
func (f Frame) Bool() bool { return f.num != 0 }

// Float returns the value of a double frame.
func (f Frame) Float() float64 { return f.dbl }

// Elems returns the elements of an array or set frame. The returned slice
// must not be modified.
func (f Frame) Elems() []Frame { return f.elems }

// Pairs returns the entries of a map frame in key order. The returned
// slice must not be modified.
func (f Frame) Pairs() []Pair { return f.pairs }

// Len returns the element count of an aggregate or the payload length of
// a bulk frame. Null frames have length zero.
func (f Frame) Len() int {
	switch f.kind {
	case KindArray, KindSet:
		return len(f.elems)
	case KindMap:
		return len(f.pairs)
	case KindBulkString, KindBulkError:
		return len(f.raw)
	case KindSimpleString, KindSimpleError, KindBigNumber:
		return len(f.str)
	}
	return 0
}

// String renders the frame for logs and test failures.
func (f Frame) String() string {
	var sb strings.Builder
	writeDebug(&sb, f)
	return sb.String()
}

func writeDebug(sb *strings.Builder, f Frame) {
	switch f.kind {
	case KindSimpleString:
		sb.WriteString(f.str)
	case KindSimpleError:
		sb.WriteString("(error) ")
		sb.WriteString(f.str)
	case KindInteger:
		sb.WriteString(strconv.FormatInt(f.num, 10))
	case KindBulkString:
		if f.null {
			sb.WriteString("(nil)")
			return
		}
		sb.WriteString(strconv.Quote(string(f.raw)))
	case KindNull:
		sb.WriteString("(null)")
	case KindBoolean:
		sb.WriteString(strconv.FormatBool(f.num != 0))
	case KindDouble:
		sb.WriteString(formatDouble(f.dbl))
	case KindBigNumber:
		sb.WriteString("(")
		sb.WriteString(f.str)
	case KindBulkError:
		sb.WriteString("(error) ")
		sb.WriteString(strconv.Quote(string(f.raw)))
	case KindArray, KindSet:
		if f.null {
			sb.WriteString("(nil)")
			return
		}
		open, closing := "[", "]"
		if f.kind == KindSet {
			open, closing = "~{", "}"
		}
		sb.WriteString(open)
		for i, e := range f.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeDebug(sb, e)
		}
		sb.WriteString(closing)
	case KindMap:
		if f.null {
			sb.WriteString("(nil)")
			return
		}
		sb.WriteString("{")
		for i, p := range f.pairs {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeDebug(sb, p.Key)
			sb.WriteString(": ")
			writeDebug(sb, p.Value)
		}
		sb.WriteString("}")
	}
}
