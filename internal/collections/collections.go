// Package collections provides the specialised containers the printer's hot
// loop relies on: a vector-backed map for the dense uint32 id space of
// conditions and infos, and an arena-backed stack for continuation nodes.
package collections

import "github.com/teleivo/printkit/internal/arena"

// DenseMap maps uint32 keys to values of type T. It is backed by a slice so
// inserts and lookups are constant time at the cost of memory proportional to
// the largest key. Ids assigned from a monotonic counter make it dense in
// practice.
type DenseMap[T any] struct {
	entries []entry[T]
}

type entry[T any] struct {
	value   T
	present bool
}

// NewDenseMap creates a map sized for keys below capacity. The map grows if a
// larger key is inserted.
func NewDenseMap[T any](capacity uint32) *DenseMap[T] {
	return &DenseMap[T]{entries: make([]entry[T], capacity)}
}

// Insert stores value under key, replacing any previous value.
func (m *DenseMap[T]) Insert(key uint32, value T) {
	if int(key) >= len(m.entries) {
		grown := make([]entry[T], max(int(key)+1, 2*len(m.entries)))
		copy(grown, m.entries)
		m.entries = grown
	}
	m.entries[key] = entry[T]{value: value, present: true}
}

// Remove deletes the value under key if present.
func (m *DenseMap[T]) Remove(key uint32) {
	if int(key) < len(m.entries) {
		m.entries[key] = entry[T]{}
	}
}

// Get returns the value under key and whether it is present.
func (m *DenseMap[T]) Get(key uint32) (T, bool) {
	if int(key) >= len(m.entries) {
		var zero T
		return zero, false
	}
	e := m.entries[key]
	return e.value, e.present
}

// Clear removes every entry while keeping the backing storage.
func (m *DenseMap[T]) Clear() {
	clear(m.entries)
}

// NodeStack is a LIFO stack whose nodes live in a bump arena so pushes inside
// the printer's loop do not hit the garbage collector. Reset both empties the
// stack and recycles its nodes.
type NodeStack[T any] struct {
	head  *stackNode[T]
	arena *arena.Arena[stackNode[T]]
}

type stackNode[T any] struct {
	item T
	next *stackNode[T]
}

// NewNodeStack creates an empty stack with its own arena.
func NewNodeStack[T any]() *NodeStack[T] {
	return &NodeStack[T]{arena: arena.New[stackNode[T]]()}
}

// Push adds item on top of the stack.
func (s *NodeStack[T]) Push(item T) {
	s.head = s.arena.Alloc(stackNode[T]{item: item, next: s.head})
}

// Pop removes and returns the top item. The second return value is false if
// the stack is empty.
func (s *NodeStack[T]) Pop() (T, bool) {
	if s.head == nil {
		var zero T
		return zero, false
	}
	item := s.head.item
	s.head = s.head.next
	return item, true
}

// IsEmpty reports whether the stack holds no items.
func (s *NodeStack[T]) IsEmpty() bool {
	return s.head == nil
}

// Mark captures the stack state in O(1). Nodes popped after taking a mark
// stay allocated in the arena, so restoring a mark brings them back intact.
type Mark[T any] struct {
	head *stackNode[T]
}

// Mark returns the current stack state.
func (s *NodeStack[T]) Mark() Mark[T] {
	return Mark[T]{head: s.head}
}

// Restore rewinds the stack to a previously captured mark. The mark must come
// from this stack and from after its last Reset.
func (s *NodeStack[T]) Restore(m Mark[T]) {
	s.head = m.head
}

// Reset empties the stack and recycles every node.
func (s *NodeStack[T]) Reset() {
	s.head = nil
	s.arena.Reset()
}
