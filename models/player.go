package models

// Screen dimensions shared with the client. Pipe placement and the
// out-of-bounds rule are computed against these, so client and server
// must agree on them exactly.
const (
	ScreenWidth  = 400
	ScreenHeight = 600
)

// Spawn point a bird is reset to when it dies.
const (
	SpawnX float64 = 30
	SpawnY float64 = 200
)

// UpperBoundMargin is how far above the top of the screen a bird may fly
// before it counts as out of bounds.
const UpperBoundMargin float64 = 16

type PlayerStatus string

const (
	StatusDead    PlayerStatus = "dead"
	StatusPlaying PlayerStatus = "playing"
)

// Player is the per-connection state tracked by the registry. ID doubles
// as the connection identifier.
type Player struct {
	ID     string       `json:"id"`
	RoomID string       `json:"roomId,omitempty"`
	Name   string       `json:"name"`
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Score  int          `json:"score"`
	Status PlayerStatus `json:"status"`
	Color  string       `json:"color"`
}
