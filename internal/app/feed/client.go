/*
Package feed pushes newly posted room messages to live websocket subscribers.

This file defines the Client struct, representing one websocket subscriber. Subscribers only
receive: anything they send is read and discarded so that pong and close frames get processed.
*/
package feed

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"roomchat/internal/pkg/logx"
)

const (
	// timeout duration for writing to the websocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 512

	// sendBuffer is the number of events queued per client before it counts as slow.
	sendBuffer = 64
)

// Client is an active websocket subscription to one room.
type Client struct {
	hub *Hub

	// underlying websocket connection.
	conn *websocket.Conn

	// room and username the subscription was opened for.
	room     string
	username string

	// buffered queue of frames waiting to be written. Only the hub closes it.
	send chan []byte

	logger zerolog.Logger
}

// NewClient constructs a Client for the given connection. It is not registered yet.
func NewClient(hub *Hub, conn *websocket.Conn, room, username string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		room:     room,
		username: username,
		send:     make(chan []byte, sendBuffer),
		logger: logx.Logger().With().
			Str("component", "feed").
			Str("room", room).
			Str("username", username).
			Logger(),
	}
}

// ReadPump drains the connection until it fails, handling pong heartbeats,
// then unregisters the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection already closed.")
		}
	}()

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
				c.logger.Info().Err(err).Msg("Subscriber connection closed unexpectedly")
			}
			return
		}
	}
}

// WritePump writes queued frames and periodic pings until the queue is closed
// or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection already closed.")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueued(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				return
			}
		}
	}
}

// writeQueued returns false when the write loop must stop.
func (c *Client) writeQueued(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		closeMsg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed")
		if err := c.conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing feed event")
		return false
	}

	return true
}

func (c *Client) writePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
