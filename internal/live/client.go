package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 90 * time.Second
	pingPeriod   = 30 * time.Second
	readLimit    = int64(4 << 10)
	sendBuffer   = 64
)

// Client is one live connection of one user. A user may hold several at a
// time (multiple tabs or devices). The connection is written to only by the
// write pump; everyone else hands payloads over through the send channel.
type Client struct {
	ID     string
	UserID uint

	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
	log  *slog.Logger
}

func NewClient(userID uint, conn *websocket.Conn, log *slog.Logger) *Client {
	if conn != nil {
		conn.SetReadLimit(readLimit)
	}
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		log:    log,
	}
}

// Enqueue offers a payload to the write pump without blocking. A closed
// client or a full buffer drops the payload; delivery is best-effort.
func (c *Client) Enqueue(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- payload:
		return true
	default:
		c.log.Debug("send buffer full, dropping event", "connection", c.ID, "user", c.UserID)
		return false
	}
}

// Close makes the client drop all future payloads and wakes the write pump
// so it can tear the connection down. Safe to call more than once.
func (c *Client) Close() {
	c.once.Do(func() { close(c.done) })
}

type inboundFrame struct {
	Type string `json:"type"`
}

// ReadLoop consumes client frames until the connection dies. The only
// accepted frame is {"type":"ping"}, answered with a pong on the same
// connection; anything else is ignored. onClose runs exactly once on exit.
func (c *Client) ReadLoop(onClose func(*Client)) {
	defer onClose(c)

	_ = c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug("read failed", "connection", c.ID, "user", c.UserID, "error", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongTimeout))

		var frame inboundFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			continue
		}
		if frame.Type == "ping" {
			pong, _ := json.Marshal(Event{Type: EventPong})
			c.Enqueue(pong)
		}
	}
}

// WritePump drains the send channel onto the wire and keeps the connection
// alive with periodic pings. It owns the connection teardown.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.log.Debug("write failed", "connection", c.ID, "user", c.UserID, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
