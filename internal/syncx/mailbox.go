// Package syncx provides extended synchronization primitives
package syncx

import "sync"

// Mailbox is a mutex-guarded single-value slot with at-most-latest-value
// semantics: Put overwrites any value already present, and Take removes and
// returns the current value. A consumer that does not poll promptly loses
// intermediate values; it never sees the same value twice.
type Mailbox[T any] struct {
	mu      sync.Mutex
	value   T
	present bool
}

// NewMailbox creates an empty mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{}
}

// Put stores a value, overwriting any value already present.
func (m *Mailbox[T]) Put(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = v
	m.present = true
}

// Take removes and returns the current value. The second return is false
// when the mailbox is empty.
func (m *Mailbox[T]) Take() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.present {
		var zero T
		return zero, false
	}
	v := m.value
	var zero T
	m.value = zero
	m.present = false
	return v, true
}

// Peek returns the current value without clearing it.
func (m *Mailbox[T]) Peek() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, m.present
}
