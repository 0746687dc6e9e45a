package memory

import "sync"

// MemberSet is a concurrent-safe set of member strings stored under one
// set key.
type MemberSet struct {
	mu      sync.RWMutex
	members map[string]struct{}
}

// NewMemberSet creates an empty member set.
func NewMemberSet() *MemberSet {
	return &MemberSet{members: make(map[string]struct{})}
}

// Add inserts member and reports whether it was not already present.
func (s *MemberSet) Add(member string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[member]; ok {
		return false
	}
	s.members[member] = struct{}{}
	return true
}

// Contains reports whether member is in the set.
func (s *MemberSet) Contains(member string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[member]
	return ok
}

// Len returns the number of members.
func (s *MemberSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}

// Members returns a copy of all members in unspecified order.
func (s *MemberSet) Members() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	return out
}
