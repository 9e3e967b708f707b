// internal/store/bus.go
package store

import "sync"

// bus fans change notifications out to subscribers. Each subscriber owns a
// capacity-1 channel drained by a single goroutine, so its callback never
// runs concurrently with itself and publishers never block; notifications
// arriving while the callback runs collapse into one pending delivery.
type bus struct {
	mu   sync.Mutex
	subs map[Collection]map[int]*subscriber
	next int
}

type subscriber struct {
	pending chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newBus() *bus {
	return &bus{subs: make(map[Collection]map[int]*subscriber)}
}

func (b *bus) subscribe(col Collection, fn func()) CancelFunc {
	sub := &subscriber{
		pending: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	b.mu.Lock()
	if b.subs[col] == nil {
		b.subs[col] = make(map[int]*subscriber)
	}
	id := b.next
	b.next++
	b.subs[col][id] = sub
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-sub.done:
				return
			case <-sub.pending:
				fn()
			}
		}
	}()

	return func() {
		sub.once.Do(func() {
			close(sub.done)
			b.mu.Lock()
			delete(b.subs[col], id)
			b.mu.Unlock()
		})
	}
}

func (b *bus) publish(col Collection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs[col] {
		select {
		case sub.pending <- struct{}{}:
		default:
		}
	}
}

func (b *bus) closeAll() {
	b.mu.Lock()
	subs := b.subs
	b.subs = make(map[Collection]map[int]*subscriber)
	b.mu.Unlock()

	for _, m := range subs {
		for _, sub := range m {
			sub.once.Do(func() { close(sub.done) })
		}
	}
}
