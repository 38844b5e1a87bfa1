// Package notify implements the change-notification contract used by the
// reconciliation services: at-least-once delivery per logical mutation,
// synchronous dispatch on the calling goroutine, no payload beyond
// "something in this collection changed".
package notify

import "sync"

// Notifier broadcasts change signals to subscribers.
// The zero value is ready to use.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// Subscribe registers fn and returns a function that removes it again.
// fn runs synchronously on whichever goroutine calls Notify.
func (n *Notifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]func())
	}
	id := n.next
	n.next++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Notify invokes every subscriber once.
func (n *Notifier) Notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
