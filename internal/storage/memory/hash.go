package memory

import (
	"sync"

	"github.com/yndnr/respkv/pkg/resp"
)

// FieldValue is one field of a hash.
type FieldValue struct {
	Field string
	Value resp.Frame
}

// FieldMap is a concurrent-safe field -> value map stored under one hash key.
type FieldMap struct {
	mu     sync.RWMutex
	fields map[string]resp.Frame
}

// NewFieldMap creates an empty field map.
func NewFieldMap() *FieldMap {
	return &FieldMap{fields: make(map[string]resp.Frame)}
}

// Set stores value under field and reports whether the field is new.
func (m *FieldMap) Set(field string, value resp.Frame) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.fields[field]
	m.fields[field] = value
	return !exists
}

// Get returns the value of field.
func (m *FieldMap) Get(field string) (resp.Frame, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.fields[field]
	return v, ok
}

// GetMany looks up every field under a single read lock.
func (m *FieldMap) GetMany(fields []string) ([]resp.Frame, []bool) {
	values := make([]resp.Frame, len(fields))
	found := make([]bool, len(fields))

	m.mu.RLock()
	defer m.mu.RUnlock()
	for i, f := range fields {
		values[i], found[i] = m.fields[f]
	}
	return values, found
}

// Len returns the number of fields.
func (m *FieldMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.fields)
}

// Snapshot returns a copy of all fields in unspecified order.
func (m *FieldMap) Snapshot() []FieldValue {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]FieldValue, 0, len(m.fields))
	for f, v := range m.fields {
		out = append(out, FieldValue{Field: f, Value: v})
	}
	return out
}
