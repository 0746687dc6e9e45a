package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/yndnr/respkv/pkg/resp"
)

// PlainFormatter renders replies the way redis-cli does.
type PlainFormatter struct{}

// Format writes f followed by a newline.
func (p *PlainFormatter) Format(w io.Writer, f resp.Frame) error {
	_, err := io.WriteString(w, Plain(f)+"\n")
	return err
}

// Plain renders f as plain text. Aggregates span one line per element.
func Plain(f resp.Frame) string {
	return strings.Join(plainLines(f), "\n")
}

func plainLines(f resp.Frame) []string {
	switch f.Kind() {
	case resp.KindArray, resp.KindSet:
		if f.IsNull() {
			return []string{"(nil)"}
		}
		if f.Len() == 0 {
			if f.Kind() == resp.KindSet {
				return []string{"(empty set)"}
			}
			return []string{"(empty array)"}
		}
		var out []string
		for i, e := range f.Elems() {
			out = appendIndented(out, fmt.Sprintf("%d) ", i+1), plainLines(e))
		}
		return out
	case resp.KindMap:
		if f.IsNull() {
			return []string{"(nil)"}
		}
		if f.Len() == 0 {
			return []string{"(empty map)"}
		}
		var out []string
		for i, p := range f.Pairs() {
			prefix := fmt.Sprintf("%d# %s => ", i+1, Plain(p.Key))
			out = appendIndented(out, prefix, plainLines(p.Value))
		}
		return out
	}
	return []string{scalar(f)}
}

// appendIndented prefixes the first line and aligns the rest under it.
func appendIndented(out []string, prefix string, lines []string) []string {
	pad := strings.Repeat(" ", len(prefix))
	for i, l := range lines {
		if i == 0 {
			out = append(out, prefix+l)
		} else {
			out = append(out, pad+l)
		}
	}
	return out
}

func scalar(f resp.Frame) string {
	switch f.Kind() {
	case resp.KindSimpleString:
		return f.Text()
	case resp.KindSimpleError, resp.KindBulkError:
		return "(error) " + f.Text()
	case resp.KindInteger:
		return "(integer) " + strconv.FormatInt(f.Int(), 10)
	case resp.KindBulkString:
		if f.IsNull() {
			return "(nil)"
		}
		return strconv.Quote(f.Text())
	case resp.KindNull:
		return "(nil)"
	case resp.KindBoolean:
		return "(" + strconv.FormatBool(f.Bool()) + ")"
	case resp.KindDouble:
		return "(double) " + formatDouble(f.Float())
	case resp.KindBigNumber:
		return "(big number) " + f.Text()
	}
	return f.String()
}

func formatDouble(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
