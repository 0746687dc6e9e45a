package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yndnr/respkv/pkg/resp"
)

// Parse errors.
var (
	// ErrInvalidCommand reports an unknown verb or a verb that does not
	// match the command being parsed.
	ErrInvalidCommand = errors.New("command: invalid command")

	// ErrInvalidType reports a request that is not an Array, or an operand
	// that is not a SimpleString or BulkString where text is required.
	ErrInvalidType = errors.New("command: invalid type")

	// ErrEndOfElements reports a request with too few operands.
	ErrEndOfElements = errors.New("command: end of elements")

	// ErrNotFinished reports a request with too many operands.
	ErrNotFinished = errors.New("command: not finished")

	// ErrInvalidUTF8 reports a text operand that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("command: invalid utf-8")
)

// ParseError records which verb a parse error belongs to.
type ParseError struct {
	// Verb is the upper-cased verb, or empty if it could not be read.
	Verb string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Verb == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Verb, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrorReply converts a parse error into the SimpleError sent to the client.
func ErrorReply(err error) resp.Frame {
	var verb string
	var pe *ParseError
	if errors.As(err, &pe) {
		verb = pe.Verb
	}

	switch {
	case verb == "" && errors.Is(err, ErrEndOfElements):
		return resp.SimpleError("ERR no command")
	case verb == "" && errors.Is(err, ErrInvalidType):
		return resp.SimpleError("ERR invalid request, expected an array of bulk strings")
	case errors.Is(err, ErrInvalidCommand):
		return resp.SimpleError(fmt.Sprintf("ERR unknown command '%s'", verb))
	case errors.Is(err, ErrEndOfElements), errors.Is(err, ErrNotFinished):
		return resp.SimpleError(fmt.Sprintf("ERR wrong number of arguments for '%s' command", strings.ToLower(verb)))
	case errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidUTF8):
		return resp.SimpleError("ERR invalid argument type")
	default:
		return resp.SimpleError("ERR " + err.Error())
	}
}
