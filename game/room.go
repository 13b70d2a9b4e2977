package game

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/skyflap/skyflap-backend/models"
)

const (
	initialPipePairs  = 4
	countdownSeconds  = 3
	countdownInterval = time.Second
	simTickInterval   = time.Second / 30
	pipeRecycleRate   = time.Second
	statusGraceDelay  = 100 * time.Millisecond
)

// Broadcaster is the transport hook rooms publish through; the websocket
// hub implements it. Sends are fire and forget.
type Broadcaster interface {
	ToRoom(roomID string, event string, data any)
}

// Room owns one game's lifecycle: membership, host designation, the
// status state machine, the pipe queue, and its own timers.
//
// One mutex guards all room state, and both play-phase tickers (the 30 Hz
// simulation tick and the 1 Hz pipe recycle) are driven by a single
// goroutine, so they can never race on the pipe queue. Broadcasts happen
// under the lock, which keeps status changes and snapshots totally
// ordered within a room.
type Room struct {
	ID string

	registry   *Registry
	emitter    Broadcaster
	difficulty Difficulty
	log        *zap.SugaredLogger

	mu         sync.Mutex
	status     models.GameStatus
	statusData any
	hostID     string
	memberIDs  []string
	pipes      []models.PipePair // FIFO of pairs: oldest at the head

	countdownStop chan struct{}
	playStop      chan struct{}
	graceTimer    *time.Timer
	destroyed     bool
}

func newRoom(id, hostID string, registry *Registry, emitter Broadcaster, difficulty Difficulty, log *zap.SugaredLogger) *Room {
	return &Room{
		ID:         id,
		registry:   registry,
		emitter:    emitter,
		difficulty: difficulty,
		log:        log,
		status:     models.GameWaiting,
		hostID:     hostID,
	}
}

// join appends the player to the membership and returns the
// acknowledgement payload for the joining connection.
func (r *Room) join(playerID string) models.GameJoined {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.memberIDs = append(r.memberIDs, playerID)
	return models.GameJoined{
		Status:     r.status,
		StatusData: r.statusData,
		Players:    r.registry.SnapshotOf(r.memberIDs),
		IsHost:     r.hostID == playerID,
	}
}

// removeMember drops the player from the membership and reports whether
// the room is now empty. While members remain, the earliest-joined one
// inherits the host seat if it was vacated, and survivors are told who
// left and what the room status is now.
func (r *Room) removeMember(playerID string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	members := r.memberIDs[:0]
	for _, id := range r.memberIDs {
		if id == playerID {
			found = true
			continue
		}
		members = append(members, id)
	}
	r.memberIDs = members
	if !found {
		return false
	}

	if len(r.memberIDs) == 0 {
		return true
	}

	if r.hostID == playerID {
		r.hostID = r.memberIDs[0]
	}

	r.emitter.ToRoom(r.ID, models.EventPlayerLeft, models.PlayerLeft{PlayerID: playerID, HostID: r.hostID})
	r.broadcastStatusLocked()
	return false
}

// StartGame moves the room from waiting to loading: lay out the initial
// pipes, flip every member to playing, and run the countdown. Requests
// from anyone but the host, or while a round is underway, are ignored.
func (r *Room) StartGame(requesterID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed || r.status != models.GameWaiting || r.hostID != requesterID {
		r.log.Debugf("startGame rejected: room=%s requester=%s status=%s", r.ID, requesterID, r.status)
		return
	}

	r.log.Infof("starting game in room %s", r.ID)

	r.pipes = nil
	for i := 0; i < initialPipePairs; i++ {
		upper, lower := PlacePipePair(rightmostX(r.pipes), r.difficulty, models.ScreenHeight)
		r.pipes = append(r.pipes, models.PipePair{Upper: upper, Lower: lower})
	}

	for _, id := range r.memberIDs {
		r.registry.SetStatus(id, models.StatusPlaying)
	}

	r.status = models.GameLoading
	r.statusData = models.LoadingData{TimeRemaining: countdownSeconds, Pipes: r.flatPipesLocked()}
	r.broadcastStatusLocked()

	r.countdownStop = make(chan struct{})
	go r.runCountdown(r.countdownStop)
}

func (r *Room) runCountdown(stop <-chan struct{}) {
	ticker := time.NewTicker(countdownInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if r.countdownTick() {
				return
			}
		}
	}
}

// countdownTick decrements the remaining time and rebroadcasts; hitting
// zero transitions the room to playing. Returns true when the countdown
// is finished with.
func (r *Room) countdownTick() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed || r.status != models.GameLoading {
		return true
	}

	data, _ := r.statusData.(models.LoadingData)
	data.TimeRemaining--
	if data.TimeRemaining > 0 {
		// Repeats carry the countdown only; clients already hold the pipes.
		data.Pipes = nil
		r.statusData = data
		r.broadcastStatusLocked()
		return false
	}

	r.countdownStop = nil
	r.status = models.GamePlaying
	r.statusData = nil
	r.broadcastStatusLocked()

	r.playStop = make(chan struct{})
	go r.runPlayLoop(r.playStop)
	return true
}

// runPlayLoop drives the playing phase. Both tickers live on this one
// goroutine: simulation and pipe recycling are serialized by
// construction, not just by the lock.
func (r *Room) runPlayLoop(stop <-chan struct{}) {
	sim := time.NewTicker(simTickInterval)
	defer sim.Stop()
	recycle := time.NewTicker(pipeRecycleRate)
	defer recycle.Stop()

	for {
		select {
		case <-stop:
			return
		case <-sim.C:
			if !r.simTick() {
				return
			}
		case <-recycle.C:
			r.recyclePipes()
		}
	}
}

// simTick broadcasts a snapshot of every member and checks liveness.
// When nobody is left playing it schedules the drop back to waiting after
// a short grace delay, so the final snapshot still reaches clients, and
// tells the play loop to exit.
func (r *Room) simTick() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed || r.status != models.GamePlaying {
		return false
	}

	players := r.registry.SnapshotOf(r.memberIDs)
	stillAlive := false
	for _, p := range players {
		if p.Status != models.StatusDead {
			stillAlive = true
			break
		}
	}

	r.emitter.ToRoom(r.ID, models.EventGameSnapshot, models.Snapshot{
		Time:    time.Now().UnixMilli(),
		Players: players,
	})

	if !stillAlive {
		r.playStop = nil
		r.graceTimer = time.AfterFunc(statusGraceDelay, r.backToWaiting)
		return false
	}
	return true
}

func (r *Room) backToWaiting() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed || r.status != models.GamePlaying {
		return
	}

	r.log.Infof("room %s round over, back to waiting", r.ID)
	r.graceTimer = nil
	r.status = models.GameWaiting
	r.statusData = nil
	r.broadcastStatusLocked()
}

// recyclePipes pops the oldest pair, re-places it ahead of the current
// rightmost pipe, pushes it back, and announces just that pair. Clients
// are expected to already hold the rest of the queue.
func (r *Room) recyclePipes() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed || r.status != models.GamePlaying || len(r.pipes) == 0 {
		return
	}

	pair := r.pipes[0]
	r.pipes = r.pipes[1:]
	pair.Upper, pair.Lower = PlacePipePair(rightmostX(r.pipes), r.difficulty, models.ScreenHeight)
	r.pipes = append(r.pipes, pair)

	r.emitter.ToRoom(r.ID, models.EventAddPipe, models.AddPipeMessage{UPipe: pair.Upper, LPipe: pair.Lower})
}

// destroy cancels every timer the room owns. The directory calls this
// before dropping the room from its map, so no timer can fire against a
// room that no longer exists.
func (r *Room) destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return
	}
	r.destroyed = true

	if r.countdownStop != nil {
		close(r.countdownStop)
		r.countdownStop = nil
	}
	if r.playStop != nil {
		close(r.playStop)
		r.playStop = nil
	}
	if r.graceTimer != nil {
		r.graceTimer.Stop()
		r.graceTimer = nil
	}
}

func (r *Room) broadcastStatusLocked() {
	r.emitter.ToRoom(r.ID, models.EventGameStatus, models.GameStatusMessage{
		Status:     r.status,
		StatusData: r.statusData,
	})
}

// flatPipesLocked snapshots the queue as a flat upper,lower,... list for
// the loading payload.
func (r *Room) flatPipesLocked() []models.Pipe {
	pipes := make([]models.Pipe, 0, len(r.pipes)*2)
	for _, pair := range r.pipes {
		pipes = append(pipes, pair.Upper, pair.Lower)
	}
	return pipes
}

// Status returns the room's current phase.
func (r *Room) Status() models.GameStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// HostID returns the current host's player id.
func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID
}

// MemberIDs returns the membership in join order.
func (r *Room) MemberIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.memberIDs...)
}

// RoomStats is a point-in-time summary for the HTTP stats endpoints.
type RoomStats struct {
	ID         string            `json:"id"`
	Status     models.GameStatus `json:"status"`
	Players    int               `json:"players"`
	HostID     string            `json:"hostId"`
	Difficulty Difficulty        `json:"difficulty"`
}

func (r *Room) stats() RoomStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomStats{
		ID:         r.ID,
		Status:     r.status,
		Players:    len(r.memberIDs),
		HostID:     r.hostID,
		Difficulty: r.difficulty,
	}
}
