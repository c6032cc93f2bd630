package dashboard

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const subscriberBuffer = 16

// Update is pushed to live clients when the log changes.
type Update struct {
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
	At   string `json:"at"`
}

// Hub fans log change notifications out to websocket subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Update]struct{}
	dropped     int64
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan Update]struct{})}
}

// Subscribe returns a buffered channel receiving every broadcast update.
func (h *Hub) Subscribe() chan Update {
	ch := make(chan Update, subscriberBuffer)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes ch and closes it.
func (h *Hub) Unsubscribe(ch chan Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// Broadcast sends u to all subscribers. Slow subscribers miss the update.
func (h *Hub) Broadcast(u Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- u:
		default:
			h.dropped++
		}
	}
}

// Dropped returns the number of updates lost to full subscriber buffers.
func (h *Hub) Dropped() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = make(map[chan Update]struct{})
}

func (s *Server) handleWebSocket(c *gin.Context) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger().Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	updates := s.hub.Subscribe()
	defer s.hub.Unsubscribe(updates)

	// Read pump detects client disconnect.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	hello := Update{Type: "hello", At: time.Now().Format(time.RFC3339)}
	if err := conn.WriteJSON(hello); err != nil {
		return
	}

	for {
		select {
		case <-gone:
			return
		case u, ok := <-updates:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteJSON(u); err != nil {
				s.logger().Debug("websocket write failed", "err", err)
				return
			}
		}
	}
}
