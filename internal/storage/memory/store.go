package memory

import (
	"github.com/yndnr/respkv/pkg/cmap"
	"github.com/yndnr/respkv/pkg/resp"
)

// Store holds the scalar, hash and set namespaces.
//
// A Store is created once per process and shared by every connection.
// All methods are safe for concurrent use; reads of absent keys return a
// zero result, never an error.
type Store struct {
	scalars *cmap.Map[string, resp.Frame]
	hashes  *cmap.Map[string, *FieldMap]
	sets    *cmap.Map[string, *MemberSet]
}

// Option configures the Store.
type Option func(*options)

type options struct {
	shardCount int
}

// WithShardCount sets the shard count of each namespace. It must be a
// power of two; other values fall back to cmap.DefaultShardCount.
func WithShardCount(n int) Option {
	return func(o *options) {
		o.shardCount = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	o := options{shardCount: cmap.DefaultShardCount}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		scalars: cmap.NewWithShards[string, resp.Frame](o.shardCount),
		hashes:  cmap.NewWithShards[string, *FieldMap](o.shardCount),
		sets:    cmap.NewWithShards[string, *MemberSet](o.shardCount),
	}
}

// Get returns the scalar stored under key.
func (s *Store) Get(key string) (resp.Frame, bool) {
	return s.scalars.Get(key)
}

// Set stores a scalar under key, replacing any previous value.
func (s *Store) Set(key string, value resp.Frame) {
	s.scalars.Set(key, value)
}

// HGet returns the value of field in the hash stored under key.
func (s *Store) HGet(key, field string) (resp.Frame, bool) {
	h, ok := s.hashes.Get(key)
	if !ok {
		return resp.Frame{}, false
	}
	return h.Get(field)
}

// HSet stores field in the hash under key, creating the hash if needed.
// It reports whether the field is new.
func (s *Store) HSet(key, field string, value resp.Frame) bool {
	h := s.hashes.GetOrCreate(key, NewFieldMap)
	return h.Set(field, value)
}

// HGetAll returns a snapshot of every field of the hash under key. The
// second result is false when the key has no hash.
func (s *Store) HGetAll(key string) ([]FieldValue, bool) {
	h, ok := s.hashes.Get(key)
	if !ok {
		return nil, false
	}
	return h.Snapshot(), true
}

// HMGet looks up fields in the hash under key. values[i] is meaningful
// only when found[i] is true.
func (s *Store) HMGet(key string, fields []string) (values []resp.Frame, found []bool) {
	h, ok := s.hashes.Get(key)
	if !ok {
		return make([]resp.Frame, len(fields)), make([]bool, len(fields))
	}
	return h.GetMany(fields)
}

// SAdd adds member to the set under key, creating the set if needed. It
// reports whether member was newly added.
func (s *Store) SAdd(key, member string) bool {
	set := s.sets.GetOrCreate(key, NewMemberSet)
	return set.Add(member)
}

// SMembers returns a snapshot of the set under key, or nil if absent.
func (s *Store) SMembers(key string) []string {
	set, ok := s.sets.Get(key)
	if !ok {
		return nil
	}
	return set.Members()
}

// SIsMember reports whether member belongs to the set under key.
func (s *Store) SIsMember(key, member string) bool {
	set, ok := s.sets.Get(key)
	if !ok {
		return false
	}
	return set.Contains(member)
}

// Stats is a point-in-time key count per namespace.
type Stats struct {
	Scalars int
	Hashes  int
	Sets    int
}

// Stats returns the number of keys in each namespace.
func (s *Store) Stats() Stats {
	return Stats{
		Scalars: s.scalars.Count(),
		Hashes:  s.hashes.Count(),
		Sets:    s.sets.Count(),
	}
}

// ShardCount returns the shard count of each namespace.
func (s *Store) ShardCount() int {
	return s.scalars.ShardCount()
}
