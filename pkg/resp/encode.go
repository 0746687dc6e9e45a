package resp

import (
	"math"
	"strconv"
)

var crlf = []byte("\r\n")

// Encode serializes f to its wire form.
func Encode(f Frame) []byte {
	return AppendFrame(nil, f)
}

// AppendFrame appends the wire form of f to dst and returns the extended
// buffer.
//
// Simple strings and simple errors cannot carry line breaks; any CR or LF
// in their text is written as a space.
func AppendFrame(dst []byte, f Frame) []byte {
	dst = append(dst, f.kind.Prefix())

	switch f.kind {
	case KindSimpleString, KindSimpleError:
		dst = appendLineText(dst, f.str)
	case KindInteger:
		dst = strconv.AppendInt(dst, f.num, 10)
		dst = append(dst, crlf...)
	case KindBulkString, KindBulkError:
		if f.null {
			return append(dst, "-1\r\n"...)
		}
		dst = strconv.AppendInt(dst, int64(len(f.raw)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, f.raw...)
		dst = append(dst, crlf...)
	case KindArray, KindSet:
		if f.null {
			return append(dst, "-1\r\n"...)
		}
		dst = strconv.AppendInt(dst, int64(len(f.elems)), 10)
		dst = append(dst, crlf...)
		for _, e := range f.elems {
			dst = AppendFrame(dst, e)
		}
	case KindMap:
		if f.null {
			return append(dst, "-1\r\n"...)
		}
		dst = strconv.AppendInt(dst, int64(len(f.pairs)), 10)
		dst = append(dst, crlf...)
		for _, p := range f.pairs {
			dst = AppendFrame(dst, p.Key)
			dst = AppendFrame(dst, p.Value)
		}
	case KindNull:
		dst = append(dst, crlf...)
	case KindBoolean:
		if f.num != 0 {
			dst = append(dst, 't')
		} else {
			dst = append(dst, 'f')
		}
		dst = append(dst, crlf...)
	case KindDouble:
		dst = append(dst, formatDouble(f.dbl)...)
		dst = append(dst, crlf...)
	case KindBigNumber:
		dst = append(dst, f.str...)
		dst = append(dst, crlf...)
	}
	return dst
}

func appendLineText(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\r' || c == '\n' {
			c = ' '
		}
		dst = append(dst, c)
	}
	return append(dst, crlf...)
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
