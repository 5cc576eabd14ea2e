package campaign

import "sync"

// StatusEvent is one progress update from an automation controller,
// pushed to websocket subscribers and kept as the controller's last
// status line.
type StatusEvent struct {
	RunID     string `json:"run_id"`
	Source    string `json:"source"` // "play" or "auto"
	State     string `json:"state"`
	Message   string `json:"message"`
	Index     int    `json:"index"`
	SentCount int    `json:"sent_count"`
	OK        bool   `json:"ok"`
}

// Hub fans status events out to any number of subscribers. Slow
// subscribers drop events rather than stall a controller.
type Hub struct {
	mu   sync.Mutex
	subs map[chan StatusEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan StatusEvent]struct{})}
}

// Subscribe returns a buffered event channel and an unsubscribe func.
func (h *Hub) Subscribe() (<-chan StatusEvent, func()) {
	ch := make(chan StatusEvent, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber that has buffer room.
func (h *Hub) Publish(ev StatusEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
