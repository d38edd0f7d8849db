/*
Package chat contains the core logic for presence tracking and real-time message delivery.

This file defines the Client struct, representing an active WebSocket connection bound
to one authenticated user. It manages the connection lifecycle and the read/write pumps.
The socket is push-only: messages are sent over the REST API, so the read pump exists
to service heartbeats and to detect disconnects.
*/
package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"connectify/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 512

	// sendQueueSize is the capacity of the per-connection outbound queue.
	sendQueueSize = 256

	// WsCloseCodeSessionKicked is a custom WebSocket Close Code (4000-4999 range)
	// used to signal the client that the session was replaced by a new connection.
	WsCloseCodeSessionKicked = 4001
)

// Client struct represents an active WebSocket connection and its associated user.
type Client struct {
	// the hub managing this connection's registration.
	hub *Hub

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// userID is the authenticated identity the connection is bound to.
	userID string

	// a buffered channel used to queue events waiting to be sent to the client.
	send chan []byte

	// sendMu and sendClosed guard the send channel: Enqueue must never write to
	// a closed channel, and the channel must be closed exactly once.
	sendMu     sync.Mutex
	sendClosed bool

	// structured logger with client context.
	logger zerolog.Logger
}

// NewClient constructs and returns a new Client instance.
func NewClient(hub *Hub, wsConn *websocket.Conn, userID string) *Client {
	clientLogger := logx.Logger().With().
		Str("user_id", userID).
		Logger()

	return &Client{
		hub:    hub,
		conn:   wsConn,
		userID: userID,
		send:   make(chan []byte, sendQueueSize),
		logger: clientLogger,
	}
}

// UserID returns the authenticated identity the connection is bound to.
func (c *Client) UserID() string {
	return c.userID
}

// ReadPump services heartbeats (Pong) and detects connection closure. Any data
// frames the client sends over the socket are discarded. It performs the
// unregister/announce cleanup when the connection ends for any reason.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			break
		}
	}
}

// cleanupOnDisconnect handles the necessary cleanup steps when the client's ReadPump terminates.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.hub.Release(c)

	c.closeSend()

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// WritePump handles writing events from the Client.send channel to the WebSocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// ensure the connection is closed on exit
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage handles events pulled from the send channel, writing them to the WebSocket.
// Returns true if the WritePump loop should continue, false if it should terminate.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a periodic WebSocket Ping message to maintain the connection heartbeat.
// Returns false if the WritePump loop should terminate due to write failure.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// Enqueue attempts to place an encoded event on the client's send channel
// without blocking the caller.
func (c *Client) Enqueue(data []byte) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.sendClosed {
		return fmt.Errorf("client send queue closed")
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send channel full, dropping event")
		return fmt.Errorf("client send queue full")
	}
}

// Kick gracefully closes the client's connection by sending a custom WebSocket
// Close Frame (Code 4001) indicating that the session was replaced.
func (c *Client) Kick(reason string) {
	c.logger.Warn().
		Int("close_code", WsCloseCodeSessionKicked).
		Str("reason", reason).
		Msg("Sending WS Kick message and closing connection.")

	closeMessage := websocket.FormatCloseMessage(
		WsCloseCodeSessionKicked,
		reason,
	)

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteMessage(websocket.CloseMessage, closeMessage); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to send WS 4001 Close Message.")
	}

	c.closeSend()

	// Closing the underlying connection unblocks the read pump, which runs the
	// unregister/announce cleanup for this connection.
	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error in Kick")
	}
}

// closeSend closes the send channel exactly once, terminating the write pump.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.sendClosed {
		c.sendClosed = true
		close(c.send)
	}
}
