package game

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/skyflap/skyflap-backend/models"
)

// Registry owns every connected player's mutable state. Rooms and the
// gateway reference players by id only; all reads hand out copies so a
// concurrent movement update can never be observed half-applied.
type Registry struct {
	mu      sync.RWMutex
	players map[string]*models.Player
}

func NewRegistry() *Registry {
	return &Registry{players: make(map[string]*models.Player)}
}

// Register creates a player at the spawn point, dead, score zero, with a
// random cosmetic color. The id is the connection identifier, which the
// transport guarantees unique; an already-registered id is an error.
func (r *Registry) Register(id, roomID, name string) (models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[id]; exists {
		return models.Player{}, fmt.Errorf("player %s already registered", id)
	}

	player := &models.Player{
		ID:     id,
		RoomID: roomID,
		Name:   name,
		X:      models.SpawnX,
		Y:      models.SpawnY,
		Score:  0,
		Status: models.StatusDead,
		Color:  randomColor(),
	}
	r.players[id] = player
	return *player, nil
}

// Get returns a copy of the player's current state.
func (r *Registry) Get(id string) (models.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, ok := r.players[id]
	if !ok {
		return models.Player{}, false
	}
	return *player, true
}

// ApplyMovement records a client-reported position and, when scored is
// set, credits one point. Ignored for unknown, roomless, or dead players.
// A bird that ends up at or below the bottom of the screen, or too far
// above the top, dies on the spot and is reset to the spawn point; the
// spawn point is its respawn position for the next round.
func (r *Registry) ApplyMovement(id string, x, y float64, scored bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[id]
	if !ok || player.RoomID == "" || player.Status == models.StatusDead {
		return
	}

	player.X = x
	player.Y = y
	if scored {
		player.Score++
	}

	if player.Y >= models.ScreenHeight || player.Y < -models.UpperBoundMargin {
		killLocked(player)
	}
}

// MarkDead handles an explicit client-reported death (collision with a
// pipe), as opposed to the bounds check in ApplyMovement.
func (r *Registry) MarkDead(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[id]
	if !ok {
		return
	}
	killLocked(player)
}

// SetStatus is used by rooms during round transitions.
func (r *Registry) SetStatus(id string, status models.PlayerStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if player, ok := r.players[id]; ok {
		player.Status = status
	}
}

// Unregister removes and returns the player. Room cleanup is the
// caller's job.
func (r *Registry) Unregister(id string) (models.Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[id]
	if !ok {
		return models.Player{}, false
	}
	delete(r.players, id)
	return *player, true
}

// SnapshotOf returns copies of the given players in the given order,
// skipping ids that are no longer registered.
func (r *Registry) SnapshotOf(ids []string) []models.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		if player, ok := r.players[id]; ok {
			players = append(players, *player)
		}
	}
	return players
}

func killLocked(player *models.Player) {
	player.Status = models.StatusDead
	player.X = models.SpawnX
	player.Y = models.SpawnY
}

func randomColor() string {
	return fmt.Sprintf("0x%06x", rand.Intn(0xffffff+1))
}
