package models

import "encoding/json"

// Events consumed from clients.
const (
	EventJoinGame       = "joinGame"
	EventStartGame      = "startGame"
	EventPlayerMovement = "playerMovement"
	EventPlayerDead     = "playerDead"
	EventLeaveGame      = "leaveGame"
)

// Events produced by the server.
const (
	EventGameJoined   = "gameJoined"
	EventPlayerJoined = "playerJoined"
	EventPlayerLeft   = "playerLeft"
	EventGameStatus   = "gameStatus"
	EventAddPipe      = "addPipe"
	EventGameSnapshot = "gameSnapshot"
)

// Envelope frames every outbound websocket message.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// InboundEnvelope defers payload decoding until the event type is known.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type JoinGameMessage struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

type PlayerMovementMessage struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Scored bool    `json:"scored"`
}

// GameJoined is the private acknowledgement sent to a joining connection.
type GameJoined struct {
	Status     GameStatus `json:"status"`
	StatusData any        `json:"statusData"`
	Players    []Player   `json:"players"`
	IsHost     bool       `json:"isHost"`
}

type PlayerLeft struct {
	PlayerID string `json:"playerId"`
	HostID   string `json:"hostId"`
}

// GameStatusMessage announces every room phase change and countdown tick.
type GameStatusMessage struct {
	Status     GameStatus `json:"status"`
	StatusData any        `json:"statusData"`
}

// LoadingData rides on the first loading broadcast with the initial pipe
// layout; countdown repeats carry only the remaining time.
type LoadingData struct {
	TimeRemaining int    `json:"timeRemaining"`
	Pipes         []Pipe `json:"pipes,omitempty"`
}

type AddPipeMessage struct {
	UPipe Pipe `json:"uPipe"`
	LPipe Pipe `json:"lPipe"`
}

// Snapshot carries every member's live state for one simulation tick.
// Time is unix milliseconds, for client-side interpolation between ticks.
type Snapshot struct {
	Time    int64    `json:"time"`
	Players []Player `json:"players"`
}
