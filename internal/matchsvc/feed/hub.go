package feed

import (
	"net/http"
	"sync"
	"time"

	"github.com/avvvet/match-services/internal/comm"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

// Hub pushes every published event to all connected websocket clients.
// Clients only listen; anything they send is discarded.
type Hub struct {
	upgrader websocket.Upgrader
	connMap  sync.Map // socketId -> *client
}

// client owns one connection. Only its write loop writes to conn.
type client struct {
	id   string
	conn *websocket.Conn
	send chan comm.Event

	mu     sync.Mutex // guards closed and the close of send
	closed bool
}

func newClient(id string, conn *websocket.Conn) *client {
	return &client{id: id, conn: conn, send: make(chan comm.Event, sendBufferSize)}
}

// trySend queues ev without blocking. It reports false when the buffer is full.
func (c *client) trySend(ev comm.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the request and keeps the connection until the client leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	c := newClient(uuid.New().String(), conn)
	h.connMap.Store(c.id, c)
	log.Infof("New WebSocket connection established: %s", c.id)

	go h.writeLoop(c)
	go h.readLoop(c)
}

func (h *Hub) readLoop(c *client) {
	defer h.remove(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for ev := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(ev); err != nil {
			log.Warnf("dropping websocket %s: %v", c.id, err)
			h.remove(c)
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(time.Second))
}

func (h *Hub) remove(c *client) {
	if _, loaded := h.connMap.LoadAndDelete(c.id); loaded {
		log.Infof("Closing WebSocket connection: %s", c.id)
	}
	c.close()
}

// Publish queues ev for every client and returns at once. A client whose
// buffer is full is too slow to keep up and gets disconnected.
func (h *Hub) Publish(ev comm.Event) error {
	h.connMap.Range(func(_, value any) bool {
		c := value.(*client)
		if !c.trySend(ev) {
			log.Warnf("websocket %s send buffer full, disconnecting", c.id)
			h.remove(c)
		}
		return true
	})
	return nil
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	n := 0
	h.connMap.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
