package engine

import (
	"sync"
	"sync/atomic"
)

// Subscription is the handle for a registered callback. Unsubscribe is safe
// to call any number of times; the session cancels every live subscription
// when it ends.
type Subscription struct {
	once   sync.Once
	active atomic.Bool
	cancel func()
}

func newSubscription(cancel func()) *Subscription {
	s := &Subscription{cancel: cancel}
	s.active.Store(true)
	return s
}

// Unsubscribe removes the callback.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.active.Store(false)
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// Active reports whether the callback is still registered.
func (s *Subscription) Active() bool {
	return s.active.Load()
}

// ResultFunc receives a score and a level.
type ResultFunc func(score, level int)

type listener struct {
	fn  ResultFunc
	sub *Subscription
}

// listeners is an ordered set of callbacks.
type listeners struct {
	mu    sync.Mutex
	items []*listener
}

func (l *listeners) add(fn ResultFunc) *Subscription {
	entry := &listener{fn: fn}
	entry.sub = newSubscription(func() { l.remove(entry) })

	l.mu.Lock()
	l.items = append(l.items, entry)
	l.mu.Unlock()
	return entry.sub
}

func (l *listeners) remove(entry *listener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, it := range l.items {
		if it == entry {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// funcs returns the registered callbacks in order.
func (l *listeners) funcs() []ResultFunc {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ResultFunc, len(l.items))
	for i, it := range l.items {
		out[i] = it.fn
	}
	return out
}

// cancelAll unsubscribes everything.
func (l *listeners) cancelAll() {
	l.mu.Lock()
	items := l.items
	l.items = nil
	l.mu.Unlock()

	for _, it := range items {
		it.sub.Unsubscribe()
	}
}
