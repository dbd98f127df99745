// Package reactive provides a small observable value used to notify views
// when application state changes.
package reactive

import "sync"

// Signal holds a value and notifies subscribers after every change.
// Subscribers run synchronously, in subscription order, on the goroutine that
// called Set.
type Signal[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// New returns a signal holding initial.
func New[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	subs := s.snapshot()
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Subscribe registers fn and returns a function that removes it. The returned
// function may be called more than once.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Signal[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// snapshot must be called with mu held.
func (s *Signal[T]) snapshot() []subscriber[T] {
	out := make([]subscriber[T], len(s.subs))
	copy(out, s.subs)
	return out
}
