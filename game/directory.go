package game

import (
	"sync"

	"go.uber.org/zap"

	"github.com/skyflap/skyflap-backend/models"
)

// Directory maps room ids to rooms. Ids are client-supplied: the first
// join to an unseen id creates the room with the joiner as host, and a
// room is destroyed the instant its last member leaves.
//
// The directory mutex is held across whole join/leave operations, so a
// player's registry record and a room's member list always change
// together, never observably torn. Room timers never touch the
// directory, so this cannot deadlock with a room's own lock.
type Directory struct {
	mu         sync.Mutex
	rooms      map[string]*Room
	registry   *Registry
	emitter    Broadcaster
	difficulty Difficulty
	log        *zap.SugaredLogger
}

func NewDirectory(registry *Registry, emitter Broadcaster, difficulty Difficulty, log *zap.SugaredLogger) *Directory {
	return &Directory{
		rooms:      make(map[string]*Room),
		registry:   registry,
		emitter:    emitter,
		difficulty: difficulty,
		log:        log,
	}
}

// Join adds an already-registered player to the room, creating it first
// if needed, and returns the acknowledgement payload for the joiner.
func (d *Directory) Join(roomID, playerID string) models.GameJoined {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.rooms[roomID]
	if !ok {
		room = newRoom(roomID, playerID, d.registry, d.emitter, d.difficulty, d.log)
		d.rooms[roomID] = room
		d.log.Infof("room %s created, host %s", roomID, playerID)
	}
	return room.join(playerID)
}

// Get looks up a room by id.
func (d *Directory) Get(roomID string) (*Room, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	room, ok := d.rooms[roomID]
	return room, ok
}

// Leave removes the player from the registry and from its room. Explicit
// leaves and disconnects both land here, and a second call for the same
// player is a no-op. An emptied room has its timers cancelled before it
// is dropped from the map.
func (d *Directory) Leave(playerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	player, ok := d.registry.Unregister(playerID)
	if !ok {
		return
	}
	d.log.Infof("player %s (%s) is leaving game", playerID, player.Name)

	if player.RoomID == "" {
		return
	}
	room, ok := d.rooms[player.RoomID]
	if !ok {
		return
	}

	if room.removeMember(playerID) {
		room.destroy()
		delete(d.rooms, room.ID)
		d.log.Infof("room %s empty, destroyed", room.ID)
	}
}

// StartGame forwards a host's start request to their room. Requests from
// players without a room are ignored.
func (d *Directory) StartGame(playerID string) {
	player, ok := d.registry.Get(playerID)
	if !ok || player.RoomID == "" {
		d.log.Debugf("startGame from %s ignored: no room", playerID)
		return
	}

	room, ok := d.Get(player.RoomID)
	if !ok {
		return
	}
	room.StartGame(playerID)
}

// DirectoryStats summarizes the directory for the HTTP stats endpoint.
type DirectoryStats struct {
	Rooms    int                       `json:"rooms"`
	Players  int                       `json:"players"`
	ByStatus map[models.GameStatus]int `json:"byStatus"`
}

func (d *Directory) Stats() DirectoryStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	stats := DirectoryStats{
		Rooms:    len(d.rooms),
		ByStatus: make(map[models.GameStatus]int),
	}
	for _, room := range d.rooms {
		s := room.stats()
		stats.Players += s.Players
		stats.ByStatus[s.Status]++
	}
	return stats
}

// RoomStats returns the summary for one room.
func (d *Directory) RoomStats(roomID string) (RoomStats, bool) {
	room, ok := d.Get(roomID)
	if !ok {
		return RoomStats{}, false
	}
	return room.stats(), true
}
