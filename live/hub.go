package live

import (
	"encoding/json"
	"log"
	"sync"

	"herbsera/models"

	"github.com/gorilla/websocket"
)

// Client is one open order-updates connection for a user. A user may
// hold several (multiple tabs/devices); all of them receive every
// update for that user's orders.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

type broadcastMsg struct {
	UserID string
	Data   []byte
}

type Hub struct {
	users      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		users:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.users {
				for c := range conns {
					close(c.Send)
				}
			}
			h.users = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.users[c.UserID] == nil {
				h.users[c.UserID] = make(map[*Client]bool)
			}
			h.users[c.UserID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.users[c.UserID]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.users[m.UserID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.users[m.UserID], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Register hands a client to the hub. A client arriving after Stop has
// its Send channel closed immediately so its write pump exits instead
// of the handler blocking on a loop that already returned.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send)
	}
}

// Unregister removes a client; a no-op once the hub has stopped, the
// shutdown drain already closed every Send channel.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// PublishOrderEvent pushes an order status event to every connection
// the owning user holds. Used as the mq.Subscribe handler.
func (h *Hub) PublishOrderEvent(event models.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("live: failed to marshal order event: %v", err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{UserID: event.UserID, Data: data}:
	case <-h.done:
	}
}
