package handlers

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/skyflap/skyflap-backend/models"
)

// Hub maintains the set of active connections and provides room-scoped
// multicast: a connection can be emitted to directly, or as part of the
// named room it has joined. It implements game.Broadcaster.
type Hub struct {
	log *zap.SugaredLogger

	mu    sync.RWMutex
	conns map[string]*Connection            // connection id -> connection
	rooms map[string]map[string]*Connection // room id -> connection id -> connection
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		log:   log,
		conns: make(map[string]*Connection),
		rooms: make(map[string]map[string]*Connection),
	}
}

func (h *Hub) register(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.id] = c
}

// unregister drops the connection from the hub and any room it is in,
// and closes its send queue to end the write pump.
func (h *Hub) unregister(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c.id]; !ok {
		return
	}
	delete(h.conns, c.id)
	for roomID, members := range h.rooms {
		if _, ok := members[c.id]; ok {
			delete(members, c.id)
			if len(members) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	close(c.send)
}

// JoinRoom subscribes the connection to a room's broadcasts.
func (h *Hub) JoinRoom(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns[connID]
	if !ok {
		return
	}
	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[string]*Connection)
		h.rooms[roomID] = members
	}
	members[connID] = c
}

// LeaveRoom unsubscribes the connection from a room's broadcasts.
func (h *Hub) LeaveRoom(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.rooms, roomID)
	}
}

// ToConn emits an event to a single connection.
func (h *Hub) ToConn(connID string, event string, data any) {
	msg, ok := h.encode(event, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.conns[connID]; ok {
		c.enqueue(msg)
	}
}

// ToRoom emits an event to every connection in the room.
func (h *Hub) ToRoom(roomID string, event string, data any) {
	h.toRoom(roomID, "", event, data)
}

// ToRoomExcept emits an event to every connection in the room but one,
// used for join notices the joiner should not receive.
func (h *Hub) ToRoomExcept(roomID, exceptID string, event string, data any) {
	h.toRoom(roomID, exceptID, event, data)
}

func (h *Hub) toRoom(roomID, exceptID string, event string, data any) {
	msg, ok := h.encode(event, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.rooms[roomID] {
		if id == exceptID {
			continue
		}
		c.enqueue(msg)
	}
}

func (h *Hub) encode(event string, data any) ([]byte, bool) {
	msg, err := json.Marshal(models.Envelope{Type: event, Data: data})
	if err != nil {
		h.log.Errorf("error encoding %s event: %v", event, err)
		return nil, false
	}
	return msg, true
}
