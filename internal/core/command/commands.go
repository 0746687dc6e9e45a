package command

import (
	"slices"
	"strings"

	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/pkg/resp"
)

// Get is GET key.
type Get struct {
	Key string
}

func parseGet(f resp.Frame) (Get, error) {
	p, err := expect(f, "GET")
	if err != nil {
		return Get{}, err
	}
	key, err := p.NextString()
	if err != nil {
		return Get{}, err
	}
	return Get{Key: key}, p.Finish()
}

func (Get) Verb() string { return "GET" }
func (Get) command()     {}

// Execute returns the stored value or Null.
func (c Get) Execute(s Store) resp.Frame {
	if v, ok := s.Get(c.Key); ok {
		return v
	}
	return resp.Null()
}

// Set is SET key value. Value may be any frame.
type Set struct {
	Key   string
	Value resp.Frame
}

func parseSet(f resp.Frame) (Set, error) {
	p, err := expect(f, "SET")
	if err != nil {
		return Set{}, err
	}
	key, err := p.NextString()
	if err != nil {
		return Set{}, err
	}
	value, err := p.Next()
	if err != nil {
		return Set{}, err
	}
	return Set{Key: key, Value: value}, p.Finish()
}

func (Set) Verb() string { return "SET" }
func (Set) command()     {}

func (c Set) Execute(s Store) resp.Frame {
	s.Set(c.Key, c.Value)
	return resp.SimpleString("OK")
}

// Echo is ECHO value.
type Echo struct {
	Value resp.Frame
}

func parseEcho(f resp.Frame) (Echo, error) {
	p, err := expect(f, "ECHO")
	if err != nil {
		return Echo{}, err
	}
	value, err := p.Next()
	if err != nil {
		return Echo{}, err
	}
	return Echo{Value: value}, p.Finish()
}

func (Echo) Verb() string { return "ECHO" }
func (Echo) command()     {}

func (c Echo) Execute(Store) resp.Frame {
	return c.Value
}

// HGet is HGET key field.
type HGet struct {
	Key   string
	Field string
}

func parseHGet(f resp.Frame) (HGet, error) {
	p, err := expect(f, "HGET")
	if err != nil {
		return HGet{}, err
	}
	key, field, err := nextPair(p)
	if err != nil {
		return HGet{}, err
	}
	return HGet{Key: key, Field: field}, p.Finish()
}

func (HGet) Verb() string { return "HGET" }
func (HGet) command()     {}

func (c HGet) Execute(s Store) resp.Frame {
	if v, ok := s.HGet(c.Key, c.Field); ok {
		return v
	}
	return resp.Null()
}

// HSet is HSET key field value.
type HSet struct {
	Key   string
	Field string
	Value resp.Frame
}

func parseHSet(f resp.Frame) (HSet, error) {
	p, err := expect(f, "HSET")
	if err != nil {
		return HSet{}, err
	}
	key, field, err := nextPair(p)
	if err != nil {
		return HSet{}, err
	}
	value, err := p.Next()
	if err != nil {
		return HSet{}, err
	}
	return HSet{Key: key, Field: field, Value: value}, p.Finish()
}

func (HSet) Verb() string { return "HSET" }
func (HSet) command()     {}

// Execute stores the field and always replies 1.
func (c HSet) Execute(s Store) resp.Frame {
	s.HSet(c.Key, c.Field, c.Value)
	return resp.Integer(1)
}

// HGetAll is HGETALL key.
type HGetAll struct {
	Key string
}

func parseHGetAll(f resp.Frame) (HGetAll, error) {
	p, err := expect(f, "HGETALL")
	if err != nil {
		return HGetAll{}, err
	}
	key, err := p.NextString()
	if err != nil {
		return HGetAll{}, err
	}
	return HGetAll{Key: key}, p.Finish()
}

func (HGetAll) Verb() string { return "HGETALL" }
func (HGetAll) command()     {}

// Execute replies with a flat [field, value, ...] Array ordered by field,
// or Null if the hash does not exist.
func (c HGetAll) Execute(s Store) resp.Frame {
	fields, ok := s.HGetAll(c.Key)
	if !ok {
		return resp.Null()
	}
	slices.SortFunc(fields, func(a, b memory.FieldValue) int {
		return strings.Compare(a.Field, b.Field)
	})

	out := make([]resp.Frame, 0, 2*len(fields))
	for _, fv := range fields {
		out = append(out, resp.BulkText(fv.Field), fv.Value)
	}
	return resp.Array(out...)
}

// HMGet is HMGET key field [field ...].
type HMGet struct {
	Key    string
	Fields []string
}

func parseHMGet(f resp.Frame) (HMGet, error) {
	p, err := expect(f, "HMGET")
	if err != nil {
		return HMGet{}, err
	}
	key, err := p.NextString()
	if err != nil {
		return HMGet{}, err
	}

	n := p.Len() - 2
	if n < 1 {
		return HMGet{}, ErrEndOfElements
	}
	fields := make([]string, n)
	for i := range fields {
		if fields[i], err = p.NextString(); err != nil {
			return HMGet{}, err
		}
	}
	return HMGet{Key: key, Fields: fields}, p.Finish()
}

func (HMGet) Verb() string { return "HMGET" }
func (HMGet) command()     {}

// Execute replies with one element per requested field, in request
// order, Null where the field is missing.
func (c HMGet) Execute(s Store) resp.Frame {
	values, found := s.HMGet(c.Key, c.Fields)
	out := make([]resp.Frame, len(c.Fields))
	for i := range out {
		if found[i] {
			out[i] = values[i]
		} else {
			out[i] = resp.Null()
		}
	}
	return resp.Array(out...)
}

// SAdd is SADD key member.
type SAdd struct {
	Key    string
	Member string
}

func parseSAdd(f resp.Frame) (SAdd, error) {
	p, err := expect(f, "SADD")
	if err != nil {
		return SAdd{}, err
	}
	key, member, err := nextPair(p)
	if err != nil {
		return SAdd{}, err
	}
	return SAdd{Key: key, Member: member}, p.Finish()
}

func (SAdd) Verb() string { return "SADD" }
func (SAdd) command()     {}

// Execute replies 1 if the member was added and 0 if it was present.
func (c SAdd) Execute(s Store) resp.Frame {
	return boolInt(s.SAdd(c.Key, c.Member))
}

// SMembers is SMEMBERS key.
type SMembers struct {
	Key string
}

func parseSMembers(f resp.Frame) (SMembers, error) {
	p, err := expect(f, "SMEMBERS")
	if err != nil {
		return SMembers{}, err
	}
	key, err := p.NextString()
	if err != nil {
		return SMembers{}, err
	}
	return SMembers{Key: key}, p.Finish()
}

func (SMembers) Verb() string { return "SMEMBERS" }
func (SMembers) command()     {}

// Execute replies with the sorted members, or an empty Array if the set
// does not exist.
func (c SMembers) Execute(s Store) resp.Frame {
	members := s.SMembers(c.Key)
	slices.Sort(members)

	out := make([]resp.Frame, len(members))
	for i, m := range members {
		out[i] = resp.BulkText(m)
	}
	return resp.Array(out...)
}

// SIsMember is SISMEMBER key member.
type SIsMember struct {
	Key    string
	Member string
}

func parseSIsMember(f resp.Frame) (SIsMember, error) {
	p, err := expect(f, "SISMEMBER")
	if err != nil {
		return SIsMember{}, err
	}
	key, member, err := nextPair(p)
	if err != nil {
		return SIsMember{}, err
	}
	return SIsMember{Key: key, Member: member}, p.Finish()
}

func (SIsMember) Verb() string { return "SISMEMBER" }
func (SIsMember) command()     {}

func (c SIsMember) Execute(s Store) resp.Frame {
	return boolInt(s.SIsMember(c.Key, c.Member))
}

func nextPair(p *Parser) (string, string, error) {
	a, err := p.NextString()
	if err != nil {
		return "", "", err
	}
	b, err := p.NextString()
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

func boolInt(b bool) resp.Frame {
	if b {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}
