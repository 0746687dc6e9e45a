package command

import (
	"fmt"
	"unicode/utf8"

	"github.com/yndnr/respkv/pkg/resp"
)

// Parser is a forward-only cursor over the elements of an Array frame.
type Parser struct {
	elems []resp.Frame
	pos   int
}

// NewParser returns a cursor over f. It fails with ErrInvalidType unless f
// is a non-null Array.
func NewParser(f resp.Frame) (*Parser, error) {
	if f.Kind() != resp.KindArray || f.IsNull() {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrInvalidType, f.Kind())
	}
	return &Parser{elems: f.Elems()}, nil
}

// Next returns the next element.
func (p *Parser) Next() (resp.Frame, error) {
	if p.pos >= len(p.elems) {
		return resp.Frame{}, ErrEndOfElements
	}
	f := p.elems[p.pos]
	p.pos++
	return f, nil
}

// NextString returns the next element as text.
func (p *Parser) NextString() (string, error) {
	s, err := p.PeekString()
	if err != nil {
		return "", err
	}
	p.pos++
	return s, nil
}

// PeekString returns the next element as text without consuming it.
func (p *Parser) PeekString() (string, error) {
	if p.pos >= len(p.elems) {
		return "", ErrEndOfElements
	}
	return asText(p.elems[p.pos])
}

// Len returns the total number of elements, consumed or not.
func (p *Parser) Len() int {
	return len(p.elems)
}

// Remaining returns the number of unconsumed elements.
func (p *Parser) Remaining() int {
	return len(p.elems) - p.pos
}

// Finish fails with ErrNotFinished unless every element was consumed.
func (p *Parser) Finish() error {
	if n := p.Remaining(); n > 0 {
		return fmt.Errorf("%w: %d unexpected argument(s)", ErrNotFinished, n)
	}
	return nil
}

func asText(f resp.Frame) (string, error) {
	switch f.Kind() {
	case resp.KindSimpleString:
		return f.Text(), nil
	case resp.KindBulkString:
		if f.IsNull() {
			return "", fmt.Errorf("%w: null bulk string", ErrInvalidType)
		}
		b := f.Bytes()
		if !utf8.Valid(b) {
			return "", ErrInvalidUTF8
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("%w: expected text, got %s", ErrInvalidType, f.Kind())
	}
}
