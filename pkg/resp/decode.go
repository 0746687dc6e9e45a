package resp

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

var (
	// ErrIncomplete reports that the input is a valid prefix of a frame but
	// more bytes are needed. Nothing has been consumed.
	ErrIncomplete = errors.New("resp: incomplete frame")

	// ErrProtocol reports input that can never become a valid frame.
	ErrProtocol = errors.New("resp: protocol error")

	// ErrLimitExceeded reports a frame that exceeds the decoder limits.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// Limits bounds the resources a single decoded frame may claim.
type Limits struct {
	// MaxBulkLen limits the payload of a bulk string or bulk error.
	MaxBulkLen int
	// MaxElements limits the element (or pair) count of one aggregate.
	MaxElements int
	// MaxDepth limits aggregate nesting.
	MaxDepth int
	// MaxLineLen limits the length of a simple line (header, simple
	// string, number) before its terminator is seen.
	MaxLineLen int
}

// DefaultLimits mirrors the limits of the reference key-value server.
var DefaultLimits = Limits{
	MaxBulkLen:  512 * 1024 * 1024,
	MaxElements: 1024 * 1024,
	MaxDepth:    128,
	MaxLineLen:  64 * 1024,
}

func (l Limits) orDefault() Limits {
	if l.MaxBulkLen <= 0 {
		l.MaxBulkLen = DefaultLimits.MaxBulkLen
	}
	if l.MaxElements <= 0 {
		l.MaxElements = DefaultLimits.MaxElements
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultLimits.MaxDepth
	}
	if l.MaxLineLen <= 0 {
		l.MaxLineLen = DefaultLimits.MaxLineLen
	}
	return l
}

// preallocCap bounds slice preallocation from an untrusted count.
const preallocCap = 1024

// Decode parses one frame from the start of buf using DefaultLimits.
//
// It returns the frame and the number of bytes it occupied. If buf holds
// only part of a frame, Decode returns ErrIncomplete and n == 0; the caller
// should append more input and call Decode again on the same buffer.
func Decode(buf []byte) (Frame, int, error) {
	return DecodeWithLimits(buf, DefaultLimits)
}

// DecodeWithLimits is Decode with explicit limits.
func DecodeWithLimits(buf []byte, limits Limits) (Frame, int, error) {
	d := decoder{buf: buf, limits: limits.orDefault()}
	f, err := d.frame(0)
	if err != nil {
		return Frame{}, 0, err
	}
	return f, d.pos, nil
}

type decoder struct {
	buf    []byte
	pos    int
	limits Limits
}

func (d *decoder) frame(depth int) (Frame, error) {
	if d.pos >= len(d.buf) {
		return Frame{}, ErrIncomplete
	}
	prefix := d.buf[d.pos]
	d.pos++

	switch prefix {
	case '+':
		s, err := d.text()
		return SimpleString(s), err
	case '-':
		s, err := d.text()
		return SimpleError(s), err
	case ':':
		return d.integer()
	case '$':
		return d.bulk(KindBulkString)
	case '!':
		return d.bulk(KindBulkError)
	case '*':
		return d.sequence(KindArray, depth)
	case '~':
		return d.sequence(KindSet, depth)
	case '%':
		return d.mapping(depth)
	case '_':
		line, err := d.line()
		if err != nil {
			return Frame{}, err
		}
		if len(line) != 0 {
			return Frame{}, fmt.Errorf("%w: unexpected payload for null", ErrProtocol)
		}
		return Null(), nil
	case '#':
		return d.boolean()
	case ',':
		return d.double()
	case '(':
		return d.bigNumber()
	}
	return Frame{}, fmt.Errorf("%w: unknown type prefix %q", ErrProtocol, prefix)
}

// line returns the bytes up to the next CRLF and moves past it.
func (d *decoder) line() ([]byte, error) {
	rest := d.buf[d.pos:]
	i := bytes.IndexByte(rest, '\n')
	if i < 0 {
		// A partial line may still end in the CR of its terminator.
		if len(rest)-1 > d.limits.MaxLineLen {
			return nil, errLineTooLong(d.limits.MaxLineLen)
		}
		return nil, ErrIncomplete
	}
	if i == 0 || rest[i-1] != '\r' {
		return nil, fmt.Errorf("%w: missing CRLF", ErrProtocol)
	}
	line := rest[:i-1]
	if len(line) > d.limits.MaxLineLen {
		return nil, errLineTooLong(d.limits.MaxLineLen)
	}
	if bytes.IndexByte(line, '\r') >= 0 {
		return nil, fmt.Errorf("%w: unexpected CR in line", ErrProtocol)
	}
	d.pos += i + 1
	return line, nil
}

func errLineTooLong(limit int) error {
	return fmt.Errorf("%w: line length exceeds limit %d", ErrLimitExceeded, limit)
}

func (d *decoder) text() (string, error) {
	line, err := d.line()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(line) {
		return "", fmt.Errorf("%w: invalid utf-8 text", ErrProtocol)
	}
	return string(line), nil
}

func (d *decoder) integer() (Frame, error) {
	line, err := d.line()
	if err != nil {
		return Frame{}, err
	}
	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: invalid integer %q", ErrProtocol, line)
	}
	return Integer(n), nil
}

// length parses a length header. It returns -1 for the null form.
func (d *decoder) length(limit int) (int, error) {
	line, err := d.line()
	if err != nil {
		return 0, err
	}
	if string(line) == "-1" {
		return -1, nil
	}
	if len(line) == 0 || len(line) > 19 {
		return 0, fmt.Errorf("%w: invalid length %q", ErrProtocol, line)
	}
	n := 0
	for _, c := range line {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: invalid length %q", ErrProtocol, line)
		}
		digit := int(c - '0')
		if n > (limit-digit)/10 || n*10+digit > limit {
			return 0, fmt.Errorf("%w: length exceeds limit %d", ErrLimitExceeded, limit)
		}
		n = n*10 + digit
	}
	return n, nil
}

func (d *decoder) bulk(kind Kind) (Frame, error) {
	n, err := d.length(d.limits.MaxBulkLen)
	if err != nil {
		return Frame{}, err
	}
	if n < 0 {
		if kind != KindBulkString {
			return Frame{}, fmt.Errorf("%w: null %s", ErrProtocol, kind)
		}
		return NullBulkString(), nil
	}
	rest := d.buf[d.pos:]
	if len(rest)-2 < n {
		if len(rest) > n && rest[n] != '\r' {
			return Frame{}, fmt.Errorf("%w: invalid %s terminator", ErrProtocol, kind)
		}
		return Frame{}, ErrIncomplete
	}
	if rest[n] != '\r' || rest[n+1] != '\n' {
		return Frame{}, fmt.Errorf("%w: invalid %s terminator", ErrProtocol, kind)
	}
	payload := make([]byte, n)
	copy(payload, rest[:n])
	d.pos += n + 2
	return Frame{kind: kind, raw: payload}, nil
}

func (d *decoder) sequence(kind Kind, depth int) (Frame, error) {
	if depth >= d.limits.MaxDepth {
		return Frame{}, fmt.Errorf("%w: nesting exceeds depth %d", ErrLimitExceeded, d.limits.MaxDepth)
	}
	n, err := d.length(d.limits.MaxElements)
	if err != nil {
		return Frame{}, err
	}
	if n < 0 {
		return Frame{kind: kind, null: true}, nil
	}
	elems := make([]Frame, 0, min(n, preallocCap))
	for i := 0; i < n; i++ {
		e, err := d.frame(depth + 1)
		if err != nil {
			return Frame{}, err
		}
		elems = append(elems, e)
	}
	if kind == KindSet {
		return Set(elems...), nil
	}
	return Frame{kind: KindArray, elems: elems}, nil
}

func (d *decoder) mapping(depth int) (Frame, error) {
	if depth >= d.limits.MaxDepth {
		return Frame{}, fmt.Errorf("%w: nesting exceeds depth %d", ErrLimitExceeded, d.limits.MaxDepth)
	}
	n, err := d.length(d.limits.MaxElements)
	if err != nil {
		return Frame{}, err
	}
	if n < 0 {
		return NullMap(), nil
	}
	pairs := make([]Pair, 0, min(n, preallocCap))
	for i := 0; i < n; i++ {
		k, err := d.frame(depth + 1)
		if err != nil {
			return Frame{}, err
		}
		v, err := d.frame(depth + 1)
		if err != nil {
			return Frame{}, err
		}
		pairs = append(pairs, Pair{Key: k, Value: v})
	}
	return Map(pairs...), nil
}

func (d *decoder) boolean() (Frame, error) {
	line, err := d.line()
	if err != nil {
		return Frame{}, err
	}
	switch string(line) {
	case "t":
		return Boolean(true), nil
	case "f":
		return Boolean(false), nil
	}
	return Frame{}, fmt.Errorf("%w: invalid boolean %q", ErrProtocol, line)
}

func (d *decoder) double() (Frame, error) {
	line, err := d.line()
	if err != nil {
		return Frame{}, err
	}
	v, err := parseDouble(string(line))
	if err != nil {
		return Frame{}, fmt.Errorf("%w: invalid double %q", ErrProtocol, line)
	}
	return Double(v), nil
}

func (d *decoder) bigNumber() (Frame, error) {
	line, err := d.line()
	if err != nil {
		return Frame{}, err
	}
	return ParseBigNumber(string(line))
}

// parseDouble accepts the decimal form with an optional exponent plus the
// RESP3 spellings inf, -inf and nan.
func parseDouble(s string) (float64, error) {
	switch s {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan":
		return math.NaN(), nil
	case "":
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' && c != 'e' && c != 'E' && c != '+' && c != '-' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseFloat(s, 64)
}
