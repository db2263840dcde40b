// Package events provides the in-process fan-out used to deliver
// decrypted push messages to registered listeners. Any conforming Bus
// is substitutable; Dispatcher is the default implementation.
package events

import (
	"sync"
	"sync/atomic"
)

// Bus fans each dispatched value out to all registered listeners.
type Bus[T any] interface {
	// Subscribe registers fn and returns an unsubscribe function that
	// must be called to clean up. Safe to call multiple times.
	Subscribe(fn func(T)) (unsubscribe func())
	// Dispatch invokes every registered listener with value.
	Dispatch(value T)
}

// listener is one registered callback with a liveness flag so it is
// never invoked after its unsubscribe completes.
type listener[T any] struct {
	fn     func(T)
	active atomic.Bool
}

// Dispatcher is a mutex-guarded Bus. Listeners are invoked synchronously
// on the dispatching goroutine, after the lock is released.
type Dispatcher[T any] struct {
	mu        sync.RWMutex
	listeners map[uint64]*listener[T]
	nextID    atomic.Uint64
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher[T any]() *Dispatcher[T] {
	return &Dispatcher[T]{listeners: make(map[uint64]*listener[T])}
}

// Subscribe registers fn for future dispatches.
func (d *Dispatcher[T]) Subscribe(fn func(T)) func() {
	id := d.nextID.Add(1)

	l := &listener[T]{fn: fn}
	l.active.Store(true)

	d.mu.Lock()
	d.listeners[id] = l
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		if l, ok := d.listeners[id]; ok {
			l.active.Store(false)
			delete(d.listeners, id)
		}
		d.mu.Unlock()
	}
}

// Dispatch invokes all active listeners with value.
func (d *Dispatcher[T]) Dispatch(value T) {
	d.mu.RLock()
	snapshot := make([]*listener[T], 0, len(d.listeners))
	for _, l := range d.listeners {
		snapshot = append(snapshot, l)
	}
	d.mu.RUnlock()

	for _, l := range snapshot {
		if l.active.Load() {
			l.fn(value)
		}
	}
}

// Len reports the number of registered listeners.
func (d *Dispatcher[T]) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}
