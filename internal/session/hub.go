package session

import "sync"

const subscriberBuffer = 8

// Hub fans session states out to the subscribers of one user. A subscriber
// that is not keeping up misses states instead of blocking the publisher.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan State]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: map[string]map[chan State]struct{}{}}
}

// Subscribe returns the channel of states for userID and the function that
// ends the subscription. cancel is safe to call more than once.
func (h *Hub) Subscribe(userID string) (<-chan State, func()) {
	ch := make(chan State, subscriberBuffer)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = map[chan State]struct{}{}
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if set, ok := h.subs[userID]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.subs, userID)
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers st to every current subscriber of userID and reports how
// many received it.
func (h *Hub) Publish(userID string, st State) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for ch := range h.subs[userID] {
		select {
		case ch <- st:
			delivered++
		default:
		}
	}
	return delivered
}

// Subscribers is the number of open subscriptions for userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}
