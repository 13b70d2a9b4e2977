package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const maxMessageSize = 1024

// Keepalive intervals. The read deadline is only ever met by client
// traffic or by the pong a client returns for our pings, so pings must
// go out more often than pongWait. Variables so tests can shorten them.
var (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Connection represents one WebSocket client. Its id doubles as the
// player id for the connection's lifetime.
type Connection struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

// enqueue queues a message for the write pump without blocking. Timers
// must never wait on a slow client, so a full queue drops the message;
// delivery is best effort.
func (c *Connection) enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}

// WsHandler upgrades the connection and runs its read loop. Cleanup on
// exit behaves exactly like an explicit leaveGame.
func (g *Gateway) WsHandler(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorf("upgrade error: %v", err)
		return
	}

	c := &Connection{
		id:   uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, 256),
	}
	g.hub.register(c)
	g.log.Infof("connection %s established", c.id)

	go c.writePump()
	c.readPump(g)
}

func (c *Connection) readPump(g *Gateway) {
	defer func() {
		g.leave(c)
		g.hub.unregister(c)
		c.ws.Close()
		g.log.Infof("connection %s closed", c.id)
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Debugf("error reading from %s: %v", c.id, err)
			}
			return
		}
		g.processMessage(c, message)
	}
}

// writePump drains the send queue and pings the client so an idle
// connection (a host sitting in a waiting room sends nothing) keeps
// meeting its read deadline.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
