// Package events fans committed proof changes out to live subscribers.
package events

import (
	"sync"

	"github.com/dmitrijs2005/proofkeeper/internal/server/models"
)

// Hub delivers proof updates keyed by digest. Each subscriber owns a
// one-slot channel; a slow reader only ever sees the latest value.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan models.Proof]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan models.Proof]struct{})}
}

// Subscribe registers interest in digest. The returned cancel func is
// idempotent and closes the channel.
func (h *Hub) Subscribe(digest string) (<-chan models.Proof, func()) {
	ch := make(chan models.Proof, 1)

	h.mu.Lock()
	set, ok := h.subs[digest]
	if !ok {
		set = make(map[chan models.Proof]struct{})
		h.subs[digest] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			cur := h.subs[digest]
			delete(cur, ch)
			if len(cur) == 0 {
				delete(h.subs, digest)
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Publish replaces whatever is pending for each subscriber of p.Digest.
func (h *Hub) Publish(p models.Proof) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[p.Digest] {
		select {
		case <-ch:
		default:
		}
		ch <- p
	}
}

// Subscribers reports how many subscriptions are open for digest.
func (h *Hub) Subscribers(digest string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[digest])
}
