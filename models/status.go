package models

// GameStatus is a room's phase. Rooms only ever move
// waiting -> loading -> playing -> waiting.
type GameStatus string

const (
	GameWaiting GameStatus = "waiting"
	GameLoading GameStatus = "loading"
	GamePlaying GameStatus = "playing"
)
