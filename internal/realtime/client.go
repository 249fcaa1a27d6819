package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"dispatch/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 32
)

// Client - одно вебсокет соединение. Реализует presence.Conn: исходящие
// события проходят через буферизованный канал и единственную пишущую
// горутину, поэтому Send безопасен из любых горутин.
type Client struct {
	id      string
	actorID string // заполняется командой identity, читается только в readPump
	conn    *websocket.Conn
	log     handlerLogger
	send    chan []byte

	mu     sync.Mutex
	closed bool
}

func newClient(log handlerLogger, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	return &Client{
		id:   id,
		conn: conn,
		log:  log.With(logger.NewField("conn", id)),
		send: make(chan []byte, sendBufferSize),
	}
}

func (c *Client) ID() string { return c.id }

// Send ставит событие в очередь записи. Медленный потребитель получает
// ошибку вместо блокировки рассылающей стороны.
func (c *Client) Send(event string, payload interface{}) error {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		raw = data
	}

	frame, err := json.Marshal(Envelope{Type: event, Payload: raw})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- frame:
		return nil
	default:
		return ErrSlowConsumer
	}
}

// readPump читает команды соединения и гоняет их через роутер. Команды
// одного соединения обрабатываются строго в порядке прихода. Выход из
// цикла снимает привязку присутствия и закрывает соединение.
func (c *Client) readPump(router *Router, registry PresenceRegistry) {
	defer func() {
		registry.Unregister(c)
		c.shutdown()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("connection dropped", logger.NewField("error", err))
			}
			return
		}

		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			_ = c.Send(eventError, errorPayload{Code: "InvalidPayload", Message: "malformed frame"})
			continue
		}

		if err := router.Handle(context.Background(), c, envelope); errors.Is(err, ErrUnauthenticated) {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}
