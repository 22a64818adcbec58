package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jdcb4/DrawNGuess/internal/logger"
	"github.com/jdcb4/DrawNGuess/internal/parser"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

// ConnectionStore tracks live sockets by connection id. It doubles as the
// engine's Notifier.
type ConnectionStore interface {
	AddConnection(connID string, conn *websocket.Conn) *Client
	RemoveConnection(connID string)
	Send(connID string, eventType string, payload any)
	CloseAll()
}

// Client owns one socket. Writes go through send so only writePump touches
// the connection for writing.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *Client) close() {
	c.once.Do(func() { close(c.send) })
}

func (c *Client) writePump(log logger.Logger) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Error("Failed to write to connection "+c.ID, err)
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

type InMemoryConnectionStore struct {
	mu     sync.RWMutex
	conns  map[string]*Client
	Logger logger.Logger
}

func NewConnectionStore(log logger.Logger) ConnectionStore {
	return &InMemoryConnectionStore{
		conns:  make(map[string]*Client),
		Logger: log,
	}
}

func (c *InMemoryConnectionStore) AddConnection(connID string, wssConn *websocket.Conn) *Client {
	client := &Client{ID: connID, conn: wssConn, send: make(chan []byte, sendBufferSize)}
	c.mu.Lock()
	c.conns[connID] = client
	c.mu.Unlock()
	go client.writePump(c.Logger)
	return client
}

func (c *InMemoryConnectionStore) RemoveConnection(connID string) {
	c.mu.Lock()
	client, exists := c.conns[connID]
	delete(c.conns, connID)
	c.mu.Unlock()
	if exists {
		client.close()
	}
}

// Send encodes and queues a message. A client whose buffer is full is
// dropped rather than stalling the game loop.
func (c *InMemoryConnectionStore) Send(connID, eventType string, payload any) {
	data, err := parser.Encode(eventType, payload)
	if err != nil {
		c.Logger.Error("Failed to encode "+eventType, err)
		return
	}
	full := false
	// hold the read lock so the channel cannot be closed mid-send
	c.mu.RLock()
	if client, exists := c.conns[connID]; exists {
		select {
		case client.send <- data:
		default:
			full = true
		}
	}
	c.mu.RUnlock()
	if full {
		c.Logger.Warn("Send buffer full, dropping connection " + connID)
		c.RemoveConnection(connID)
	}
}

func (c *InMemoryConnectionStore) CloseAll() {
	c.mu.Lock()
	clients := c.conns
	c.conns = make(map[string]*Client)
	c.mu.Unlock()
	for _, client := range clients {
		client.close()
	}
}
