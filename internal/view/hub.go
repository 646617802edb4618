package view

import "sync"

// Message is what subscribers receive after each render.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// RenderData carries the redrawn task list fragment.
type RenderData struct {
	Panel   string      `json:"panel"`
	HTML    string      `json:"html"`
	Summary string      `json:"summary"`
	Pending int         `json:"pending"`
	Notice  *NoticeView `json:"notice,omitempty"`
}

const subscriberBuffer = 8

// Hub fans render messages out to subscribers. A subscriber that falls
// behind loses its oldest messages instead of blocking the sender; every
// message is a full redraw, so only the latest matters.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Message
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Message)}
}

// Subscribe returns a message channel and a func that unsubscribes and
// closes it.
func (h *Hub) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, subscriberBuffer)
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers m to every subscriber without blocking. A full buffer
// drops its oldest message to make room, so m is always delivered.
func (h *Hub) Publish(m Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- m:
			continue
		default:
		}
		// only Publish sends, so one receive frees a slot
		select {
		case <-ch:
		default:
		}
		ch <- m
	}
}

// Len reports the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
