package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event types published for lesson activity
const (
	EventConnected     = "connected"
	EventCommentAdded  = "comment_added"
	EventReplyAdded    = "reply_added"
	EventCommentLiked  = "comment_liked"
	EventLessonUpdated = "lesson_updated"
	EventLessonDeleted = "lesson_deleted"
)

// CounterEvent names the event for a lesson counter bump, e.g. "lesson_likes"
func CounterEvent(counter string) string {
	return "lesson_" + counter
}

// Event represents a message sent over WebSocket
type Event struct {
	Type     string      `json:"type"`
	LessonID string      `json:"lessonId"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

// Client represents a connected WebSocket client subscribed to one lesson
type Client struct {
	LessonID string
	Conn     *websocket.Conn
	send     chan Event
}

type broadcast struct {
	lessonID string
	event    Event
}

// Hub maintains the set of subscribed clients per lesson and fans out events
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcast
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcast, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop; it returns when ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, room := range h.rooms {
				for client := range room {
					close(client.send)
				}
			}
			h.rooms = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			close(h.done)
			return

		case client := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[client.LessonID]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[client.LessonID] = room
			}
			room[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.rooms[msg.lessonID] {
				select {
				case client.send <- msg.event:
				default:
					// Slow consumer
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with h.mu held
func (h *Hub) remove(client *Client) {
	room, ok := h.rooms[client.LessonID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.LessonID)
	}
}

// Publish queues an event for the lesson's subscribers. It never blocks; the
// event is dropped when the hub is saturated.
func (h *Hub) Publish(lessonID string, event Event) {
	event.LessonID = lessonID
	select {
	case h.broadcast <- broadcast{lessonID: lessonID, event: event}:
	default:
	}
}

// join hands a client to the event loop; false once the hub has stopped
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Subscribers returns how many clients currently follow the lesson
func (h *Hub) Subscribers(lessonID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[lessonID])
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// writePump is the only goroutine writing to the connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pongs and close frames are processed
func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()

	c.Conn.SetReadLimit(512)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
