package stack

// Stack is a LIFO of entries. The last pushed entry is the top.
// Stack is not safe for concurrent use; owners serialize access.
type Stack[T any] struct {
	entries []T
}

// New creates a new empty stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{
		entries: make([]T, 0),
	}
}

// Push adds an entry on top of the stack.
func (s *Stack[T]) Push(entry T) {
	s.entries = append(s.entries, entry)
}

// Pop removes and returns the top entry.
// The boolean is false if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.entries) == 0 {
		return zero, false
	}
	entry := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = zero
	s.entries = s.entries[:len(s.entries)-1]
	return entry, true
}

// Peek returns the top entry without removing it.
// The boolean is false if the stack is empty.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.entries) == 0 {
		var zero T
		return zero, false
	}
	return s.entries[len(s.entries)-1], true
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack[T]) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack[T]) Len() int {
	return len(s.entries)
}

// Contains reports whether any entry matches.
func (s *Stack[T]) Contains(match func(T) bool) bool {
	for _, e := range s.entries {
		if match(e) {
			return true
		}
	}
	return false
}

// Remove deletes every entry that matches, keeping the order of the rest,
// and returns how many were removed.
func (s *Stack[T]) Remove(match func(T) bool) int {
	kept := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		if match(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	var zero T
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = zero
	}
	s.entries = kept
	return removed
}

// Entries returns a copy of the entries, bottom first.
func (s *Stack[T]) Entries() []T {
	out := make([]T, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear removes all entries from the stack.
func (s *Stack[T]) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}
