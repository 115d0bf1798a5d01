package history

import (
	"github.com/mohae/deepcopy"
)

// ============================================================
// Undo history
// ============================================================

// DefaultDepth is the number of snapshots kept before the oldest is evicted.
const DefaultDepth = 10

// Manager is a bounded LIFO of deep-copied snapshots. Entries never alias the
// values passed to Snapshot.
type Manager[T any] struct {
	depth   int
	entries []T
}

func New[T any](depth int) *Manager[T] {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Manager[T]{
		depth:   depth,
		entries: make([]T, 0, depth),
	}
}

// Snapshot pushes a deep copy of v, evicting the oldest entry at capacity.
func (m *Manager[T]) Snapshot(v T) {
	entry := deepcopy.Copy(v).(T)

	if len(m.entries) == m.depth {
		copy(m.entries, m.entries[1:])
		m.entries = m.entries[:len(m.entries)-1]
	}
	m.entries = append(m.entries, entry)
}

// Undo pops the most recent snapshot. ok is false when there is nothing to undo.
func (m *Manager[T]) Undo() (T, bool) {
	var zero T
	if len(m.entries) == 0 {
		return zero, false
	}

	last := len(m.entries) - 1
	entry := m.entries[last]
	m.entries[last] = zero
	m.entries = m.entries[:last]
	return entry, true
}

func (m *Manager[T]) Clear() {
	clear(m.entries)
	m.entries = m.entries[:0]
}

func (m *Manager[T]) Len() int {
	return len(m.entries)
}

func (m *Manager[T]) Depth() int {
	return m.depth
}
