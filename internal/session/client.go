package session

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is one websocket connection. Its id is the player's opaque identity
// for the lifetime of the connection; a reconnect is a brand-new client.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan any

	mu     sync.Mutex
	closed bool
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan any, 16),
	}
}

// enqueue hands a message to the write pump without blocking. A client that
// cannot keep up loses messages rather than stalling the room. Messages for
// a closed client are dropped; the reaper may close a client whose own
// dispatch is still in flight.
func (c *Client) enqueue(msg any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- msg:
	default:
		log.Printf("SESSION: dropping message for slow client %s", c.id)
	}
}

func (c *Client) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()

	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) readPump(co *Coordinator) {
	defer func() {
		co.Disconnect(c)
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		co.Dispatch(c, msg)
	}
}

func (c *Client) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
