package handlers

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/skyflap/skyflap-backend/game"
	"github.com/skyflap/skyflap-backend/models"
)

// Gateway translates inbound transport events into registry, directory
// and room operations. It is the only layer that touches the hub:
// malformed or out-of-place events degrade to logged no-ops, never
// errors surfaced to the sender.
type Gateway struct {
	hub       *Hub
	registry  *game.Registry
	directory *game.Directory
	log       *zap.SugaredLogger
}

func NewGateway(hub *Hub, registry *game.Registry, directory *game.Directory, log *zap.SugaredLogger) *Gateway {
	return &Gateway{
		hub:       hub,
		registry:  registry,
		directory: directory,
		log:       log,
	}
}

func (g *Gateway) processMessage(c *Connection, raw []byte) {
	var env models.InboundEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		g.log.Debugf("unreadable message from %s: %v", c.id, err)
		return
	}

	switch env.Type {
	case models.EventJoinGame:
		var msg models.JoinGameMessage
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			g.log.Debugf("bad joinGame payload from %s: %v", c.id, err)
			return
		}
		g.handleJoin(c, msg)

	case models.EventStartGame:
		g.directory.StartGame(c.id)

	case models.EventPlayerMovement:
		var msg models.PlayerMovementMessage
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			g.log.Debugf("bad playerMovement payload from %s: %v", c.id, err)
			return
		}
		g.registry.ApplyMovement(c.id, msg.X, msg.Y, msg.Scored)

	case models.EventPlayerDead:
		g.registry.MarkDead(c.id)

	case models.EventLeaveGame:
		g.leave(c)

	default:
		g.log.Debugf("unhandled event %q from %s", env.Type, c.id)
	}
}

func (g *Gateway) handleJoin(c *Connection, msg models.JoinGameMessage) {
	if msg.RoomID == "" {
		g.log.Debugf("joinGame from %s without a room id", c.id)
		return
	}
	g.log.Infof("player %s joining room %s as %q", c.id, msg.RoomID, msg.Name)

	player, err := g.registry.Register(c.id, msg.RoomID, msg.Name)
	if err != nil {
		g.log.Debugf("joinGame from %s ignored: %v", c.id, err)
		return
	}

	joined := g.directory.Join(msg.RoomID, c.id)
	g.hub.JoinRoom(msg.RoomID, c.id)

	g.hub.ToConn(c.id, models.EventGameJoined, joined)
	g.hub.ToRoomExcept(msg.RoomID, c.id, models.EventPlayerJoined, player)
}

// leave tears a player out of their room. Safe to call twice: the second
// call finds no registry entry and does nothing, so an explicit
// leaveGame followed by the disconnect cleanup broadcasts only once.
func (g *Gateway) leave(c *Connection) {
	player, ok := g.registry.Get(c.id)
	if !ok {
		return
	}
	if player.RoomID != "" {
		g.hub.LeaveRoom(player.RoomID, c.id)
	}
	g.directory.Leave(c.id)
}
