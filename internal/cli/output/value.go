package output

import (
	"math"

	"github.com/yndnr/respkv/pkg/resp"
)

// Value converts f into plain Go values for JSON and YAML encoding.
//
// Strings become string, integers int64, booleans bool and finite doubles
// float64. Null forms become nil. Big numbers and non-finite doubles
// become strings. Errors become {"error": message}. Arrays and sets become
// []any and maps become map[string]any keyed by the plain rendering of
// each key.
func Value(f resp.Frame) any {
	if f.IsNull() {
		return nil
	}
	switch f.Kind() {
	case resp.KindSimpleString, resp.KindBulkString, resp.KindBigNumber:
		return f.Text()
	case resp.KindSimpleError, resp.KindBulkError:
		return map[string]any{"error": f.Text()}
	case resp.KindInteger:
		return f.Int()
	case resp.KindBoolean:
		return f.Bool()
	case resp.KindDouble:
		v := f.Float()
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return formatDouble(v)
		}
		return v
	case resp.KindArray, resp.KindSet:
		out := make([]any, 0, f.Len())
		for _, e := range f.Elems() {
			out = append(out, Value(e))
		}
		return out
	case resp.KindMap:
		out := make(map[string]any, f.Len())
		for _, p := range f.Pairs() {
			out[keyString(p.Key)] = Value(p.Value)
		}
		return out
	}
	return nil
}

func keyString(k resp.Frame) string {
	switch k.Kind() {
	case resp.KindSimpleString, resp.KindBulkString, resp.KindBigNumber:
		if !k.IsNull() {
			return k.Text()
		}
	}
	return Plain(k)
}
