package poe

import "sync"

// subscription owns one live claim query. The stream may attach after the
// component has already moved on; close releases it exactly once either way.
type subscription struct {
	id uint64

	mu     sync.Mutex
	closed bool
	cancel func()
}

func newSubscription(id uint64) *subscription {
	return &subscription{id: id}
}

func (s *subscription) attach(cancel func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return
	}
	s.cancel = cancel
	s.mu.Unlock()
}

func (s *subscription) close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (s *subscription) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
