package collections_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/printkit/internal/collections"
)

func TestDenseMap(t *testing.T) {
	t.Run("InsertAndGet", func(t *testing.T) {
		m := collections.NewDenseMap[string](4)

		_, ok := m.Get(0)
		assert.False(t, ok, "key must be absent")

		m.Insert(0, "a")
		m.Insert(3, "b")

		got, ok := m.Get(0)
		assert.True(t, ok)
		assert.EqualValues(t, got, "a")
		got, ok = m.Get(3)
		assert.True(t, ok)
		assert.EqualValues(t, got, "b")
	})

	t.Run("InsertReplaces", func(t *testing.T) {
		m := collections.NewDenseMap[string](4)
		m.Insert(1, "a")
		m.Insert(1, "b")

		got, ok := m.Get(1)
		assert.True(t, ok)
		assert.EqualValues(t, got, "b")
	})

	t.Run("GrowsPastCapacity", func(t *testing.T) {
		m := collections.NewDenseMap[int](2)
		m.Insert(100, 7)

		got, ok := m.Get(100)
		assert.True(t, ok)
		assert.Equals(t, got, 7, "value past initial capacity")
	})

	t.Run("Remove", func(t *testing.T) {
		m := collections.NewDenseMap[int](4)
		m.Insert(2, 7)
		m.Remove(2)

		_, ok := m.Get(2)
		assert.False(t, ok, "key must be absent")

		// removing an absent key is fine
		m.Remove(1000)
	})

	t.Run("Clear", func(t *testing.T) {
		m := collections.NewDenseMap[int](4)
		m.Insert(1, 1)
		m.Insert(2, 2)
		m.Clear()

		_, ok := m.Get(1)
		assert.False(t, ok, "key must be absent")
		_, ok = m.Get(2)
		assert.False(t, ok, "key must be absent")
	})
}

func TestNodeStack(t *testing.T) {
	t.Run("PushPop", func(t *testing.T) {
		s := collections.NewNodeStack[int]()
		assert.True(t, s.IsEmpty())

		s.Push(1)
		s.Push(2)
		assert.False(t, s.IsEmpty(), "stack after push")

		got, ok := s.Pop()
		assert.True(t, ok)
		assert.Equals(t, got, 2, "first pop")
		got, ok = s.Pop()
		assert.True(t, ok)
		assert.Equals(t, got, 1, "second pop")

		_, ok = s.Pop()
		assert.False(t, ok, "pop on empty stack")
	})

	t.Run("MarkRestoreBringsBackPoppedNodes", func(t *testing.T) {
		s := collections.NewNodeStack[int]()
		s.Push(1)
		s.Push(2)
		mark := s.Mark()

		s.Pop()
		s.Pop()
		s.Push(9)

		s.Restore(mark)

		got, ok := s.Pop()
		assert.True(t, ok)
		assert.Equals(t, got, 2, "top after restore")
		got, ok = s.Pop()
		assert.True(t, ok)
		assert.Equals(t, got, 1, "bottom after restore")
	})

	t.Run("Reset", func(t *testing.T) {
		s := collections.NewNodeStack[int]()
		s.Push(1)
		s.Reset()

		assert.True(t, s.IsEmpty())

		s.Push(2)
		got, ok := s.Pop()
		assert.True(t, ok)
		assert.Equals(t, got, 2, "push after reset")
	})
}
