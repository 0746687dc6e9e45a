// Package memory provides the in-memory store behind respkv.
//
// The store has three independent, string-keyed namespaces:
//
//   - scalar: key -> value frame (GET/SET)
//   - hash:   key -> field -> value frame (HGET/HSET/HGETALL/HMGET)
//   - set:    key -> set of member strings (SADD/SMEMBERS/SISMEMBER)
//
// The same key may exist in every namespace at once. Each namespace is a
// sharded cmap.Map; hash and set entries carry their own lock, created
// with an atomic get-or-create so concurrent first writers share one
// container. No lock is ever held across I/O and there is no global lock.
//
// Entries are created on first write and are never evicted.
package memory
