package event

import (
	"sync"
	"sync/atomic"

	"github.com/ghxstship/backend/internal/domain/shared"
)

type subscription struct {
	handler shared.EventHandler
	// nil matches every event type
	types map[string]struct{}
}

func (s subscription) matches(eventType string) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// subscriberSet is copy-on-write: writers replace the slice under mu and
// Publish reads the current snapshot without locking. Handlers are called
// in subscription order.
type subscriberSet struct {
	mu   sync.Mutex
	snap atomic.Pointer[[]subscription]
}

func (s *subscriberSet) current() []subscription {
	if p := s.snap.Load(); p != nil {
		return *p
	}
	return nil
}

func (s *subscriberSet) add(handler shared.EventHandler, eventTypes ...string) {
	sub := subscription{handler: handler}
	if len(eventTypes) > 0 {
		sub.types = make(map[string]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			sub.types[t] = struct{}{}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.current()
	next := make([]subscription, len(old), len(old)+1)
	copy(next, old)
	next = append(next, sub)
	s.snap.Store(&next)
}

func (s *subscriberSet) remove(handler shared.EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.current()
	next := make([]subscription, 0, len(old))
	for _, sub := range old {
		if sub.handler != handler {
			next = append(next, sub)
		}
	}
	s.snap.Store(&next)
}

func (s *subscriberSet) handlersFor(eventType string) []shared.EventHandler {
	var out []shared.EventHandler
	for _, sub := range s.current() {
		if sub.matches(eventType) {
			out = append(out, sub.handler)
		}
	}
	return out
}
