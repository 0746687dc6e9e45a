// Package cmap provides a sharded concurrent map.
//
// Keys are spread over a power-of-two number of shards by a murmur3 hash;
// each shard has its own RWMutex, so operations on keys in different
// shards never contend.
//
// Usage:
//
//	m := cmap.NewWithShards[string, *entry](64)
//	e := m.GetOrCreate("key", newEntry)
//	v, ok := m.Get("key")
//
// Callbacks passed to GetOrCreate and Range run while the shard lock is
// held and must not call back into the same map.
package cmap
