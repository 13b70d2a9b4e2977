package handlers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skyflap/skyflap-backend/game"
	"github.com/skyflap/skyflap-backend/models"
)

func newTestGateway() (*Gateway, *game.Registry, *game.Directory) {
	log := zap.NewNop().Sugar()
	reg := game.NewRegistry()
	hub := NewHub(log)
	dir := game.NewDirectory(reg, hub, game.DifficultyHard, log)
	return NewGateway(hub, reg, dir, log), reg, dir
}

func inbound(event string, data any) []byte {
	payload, _ := json.Marshal(data)
	raw, _ := json.Marshal(map[string]any{"type": event, "data": json.RawMessage(payload)})
	return raw
}

// recvEvent pops the next queued message and checks its event type.
func recvEvent(t *testing.T, c *Connection, want string) json.RawMessage {
	t.Helper()
	select {
	case msg := <-c.send:
		var env models.InboundEnvelope
		require.NoError(t, json.Unmarshal(msg, &env))
		require.Equal(t, want, env.Type, "unexpected event: %s", msg)
		return env.Data
	default:
		t.Fatalf("no message queued, wanted %s", want)
	}
	return nil
}

func assertNoEvent(t *testing.T, c *Connection) {
	t.Helper()
	select {
	case msg := <-c.send:
		t.Fatalf("unexpected message: %s", msg)
	default:
	}
}

// TestGateway_TwoPlayerSession walks the canonical two-player flow: create,
// join, start, move, die, disconnect.
func TestGateway_TwoPlayerSession(t *testing.T) {
	g, reg, dir := newTestGateway()

	a := newTestConn("conn-a")
	b := newTestConn("conn-b")
	g.hub.register(a)
	g.hub.register(b)

	// A creates room r1 and becomes host.
	g.processMessage(a, inbound(models.EventJoinGame, models.JoinGameMessage{RoomID: "r1", Name: "alice"}))

	var joined models.GameJoined
	require.NoError(t, json.Unmarshal(recvEvent(t, a, models.EventGameJoined), &joined))
	assert.True(t, joined.IsHost)
	assert.Equal(t, models.GameWaiting, joined.Status)
	require.Len(t, joined.Players, 1)

	// B joins: B is acknowledged, A is notified.
	g.processMessage(b, inbound(models.EventJoinGame, models.JoinGameMessage{RoomID: "r1", Name: "bob"}))

	require.NoError(t, json.Unmarshal(recvEvent(t, b, models.EventGameJoined), &joined))
	assert.False(t, joined.IsHost)
	require.Len(t, joined.Players, 2)
	assert.Equal(t, "conn-a", joined.Players[0].ID)
	assert.Equal(t, "conn-b", joined.Players[1].ID)

	var newcomer models.Player
	require.NoError(t, json.Unmarshal(recvEvent(t, a, models.EventPlayerJoined), &newcomer))
	assert.Equal(t, "conn-b", newcomer.ID)
	assert.Equal(t, "bob", newcomer.Name)
	assertNoEvent(t, b)

	// Non-host start is silently ignored.
	g.processMessage(b, inbound(models.EventStartGame, struct{}{}))
	assertNoEvent(t, a)
	assertNoEvent(t, b)

	// Host start: everyone gets the loading broadcast with the pipe layout.
	g.processMessage(a, inbound(models.EventStartGame, struct{}{}))

	var status struct {
		Status     models.GameStatus  `json:"status"`
		StatusData models.LoadingData `json:"statusData"`
	}
	require.NoError(t, json.Unmarshal(recvEvent(t, a, models.EventGameStatus), &status))
	assert.Equal(t, models.GameLoading, status.Status)
	assert.Equal(t, 3, status.StatusData.TimeRemaining)
	assert.Len(t, status.StatusData.Pipes, 8)
	recvEvent(t, b, models.EventGameStatus)

	// Movement is applied and scoring credited.
	g.processMessage(a, inbound(models.EventPlayerMovement, models.PlayerMovementMessage{X: 120, Y: 280, Scored: true}))
	player, ok := reg.Get("conn-a")
	require.True(t, ok)
	assert.Equal(t, float64(120), player.X)
	assert.Equal(t, 1, player.Score)

	// Explicit death resets to spawn.
	g.processMessage(a, inbound(models.EventPlayerDead, struct{}{}))
	player, _ = reg.Get("conn-a")
	assert.Equal(t, models.StatusDead, player.Status)
	assert.Equal(t, models.SpawnX, player.X)

	// B disconnects mid-round: A learns who left and who hosts now.
	g.leave(b)

	var left models.PlayerLeft
	require.NoError(t, json.Unmarshal(recvEvent(t, a, models.EventPlayerLeft), &left))
	assert.Equal(t, "conn-b", left.PlayerID)
	assert.Equal(t, "conn-a", left.HostID)
	recvEvent(t, a, models.EventGameStatus)
	assertNoEvent(t, b)

	room, ok := dir.Get("r1")
	require.True(t, ok, "room survives with one member")
	assert.Equal(t, []string{"conn-a"}, room.MemberIDs())

	// Disconnect cleanup after an explicit leave must not broadcast twice.
	g.leave(b)
	assertNoEvent(t, a)

	g.leave(a)
	_, ok = dir.Get("r1")
	assert.False(t, ok)
}

func TestGateway_IgnoresGarbage(t *testing.T) {
	g, reg, _ := newTestGateway()
	c := newTestConn("conn-x")
	g.hub.register(c)

	g.processMessage(c, []byte("not json"))
	g.processMessage(c, inbound("teleport", struct{}{}))
	g.processMessage(c, inbound(models.EventJoinGame, models.JoinGameMessage{Name: "noroom"}))
	g.processMessage(c, []byte(`{"type":"playerMovement","data":"nope"}`))
	assertNoEvent(t, c)

	_, ok := reg.Get("conn-x")
	assert.False(t, ok, "nothing should have been registered")
}

func TestGateway_DuplicateJoinIgnored(t *testing.T) {
	g, _, dir := newTestGateway()
	c := newTestConn("conn-a")
	g.hub.register(c)

	g.processMessage(c, inbound(models.EventJoinGame, models.JoinGameMessage{RoomID: "r1", Name: "alice"}))
	recvEvent(t, c, models.EventGameJoined)

	g.processMessage(c, inbound(models.EventJoinGame, models.JoinGameMessage{RoomID: "r2", Name: "alice"}))
	assertNoEvent(t, c)

	room, ok := dir.Get("r1")
	require.True(t, ok)
	assert.Len(t, room.MemberIDs(), 1)
	_, ok = dir.Get("r2")
	assert.False(t, ok)
}

// Events sent to players in other rooms must never leak across rooms.
func TestGateway_RoomsAreIsolated(t *testing.T) {
	g, _, _ := newTestGateway()

	conns := make([]*Connection, 4)
	for i := range conns {
		conns[i] = newTestConn(fmt.Sprintf("conn-%d", i))
		g.hub.register(conns[i])
	}

	g.processMessage(conns[0], inbound(models.EventJoinGame, models.JoinGameMessage{RoomID: "red", Name: "p0"}))
	g.processMessage(conns[1], inbound(models.EventJoinGame, models.JoinGameMessage{RoomID: "red", Name: "p1"}))
	g.processMessage(conns[2], inbound(models.EventJoinGame, models.JoinGameMessage{RoomID: "blue", Name: "p2"}))
	g.processMessage(conns[3], inbound(models.EventJoinGame, models.JoinGameMessage{RoomID: "blue", Name: "p3"}))
	for _, c := range conns {
		drain(c)
	}

	// Start red's round; blue must hear nothing.
	g.processMessage(conns[0], inbound(models.EventStartGame, struct{}{}))
	recvEvent(t, conns[0], models.EventGameStatus)
	recvEvent(t, conns[1], models.EventGameStatus)
	assertNoEvent(t, conns[2])
	assertNoEvent(t, conns[3])

	for _, c := range conns {
		g.leave(c)
	}
}
