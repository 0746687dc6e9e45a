package command

import (
	"fmt"
	"strings"

	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/pkg/resp"
)

// Store is the keyspace a Command executes against. *memory.Store
// implements it.
type Store interface {
	Get(key string) (resp.Frame, bool)
	Set(key string, value resp.Frame)
	HGet(key, field string) (resp.Frame, bool)
	HSet(key, field string, value resp.Frame) bool
	HGetAll(key string) ([]memory.FieldValue, bool)
	HMGet(key string, fields []string) ([]resp.Frame, []bool)
	SAdd(key, member string) bool
	SMembers(key string) []string
	SIsMember(key, member string) bool
}

var _ Store = (*memory.Store)(nil)

// Command is a parsed, validated request. The set of implementations is
// closed; use a type switch to inspect one.
type Command interface {
	// Verb returns the upper-case command name.
	Verb() string
	// Execute runs the command and returns the reply frame.
	Execute(s Store) resp.Frame

	command()
}

// Verbs lists every supported verb in a stable order.
var Verbs = []string{
	"GET", "SET", "ECHO",
	"HGET", "HSET", "HGETALL", "HMGET",
	"SADD", "SMEMBERS", "SISMEMBER",
}

// Parse converts a request frame into a Command. Verbs are matched
// case-insensitively. All errors are *ParseError.
func Parse(f resp.Frame) (Command, error) {
	p, err := NewParser(f)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	name, err := p.PeekString()
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	verb := strings.ToUpper(name)
	var cmd Command
	switch verb {
	case "GET":
		cmd, err = parseGet(f)
	case "SET":
		cmd, err = parseSet(f)
	case "ECHO":
		cmd, err = parseEcho(f)
	case "HGET":
		cmd, err = parseHGet(f)
	case "HSET":
		cmd, err = parseHSet(f)
	case "HGETALL":
		cmd, err = parseHGetAll(f)
	case "HMGET":
		cmd, err = parseHMGet(f)
	case "SADD":
		cmd, err = parseSAdd(f)
	case "SMEMBERS":
		cmd, err = parseSMembers(f)
	case "SISMEMBER":
		cmd, err = parseSIsMember(f)
	default:
		err = fmt.Errorf("%w: %q", ErrInvalidCommand, name)
		verb = name
	}
	if err != nil {
		return nil, &ParseError{Verb: verb, Err: err}
	}
	return cmd, nil
}

// expect opens a cursor over f and consumes the verb, which must equal
// verb case-insensitively.
func expect(f resp.Frame, verb string) (*Parser, error) {
	p, err := NewParser(f)
	if err != nil {
		return nil, err
	}
	name, err := p.NextString()
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(name, verb) {
		return nil, fmt.Errorf("%w: expected %s, got %q", ErrInvalidCommand, verb, name)
	}
	return p, nil
}
