package game

import (
	"sync"
	"time"
)

// RoomState represents the current phase of a room's round
type RoomState string

const (
	StateAwaitingClue RoomState = "awaiting_clue"
	StateClueGiven    RoomState = "clue_given"
	StateRevealed     RoomState = "revealed"
)

// Room is the authoritative state of one game room. Player order is join
// order and drives clue-giver rotation. All mutating operations validate the
// caller's role and the current state; illegitimate actions are dropped
// without touching state.
type Room struct {
	ID    string
	State RoomState

	Players          []*Player
	CurrentCluegiver string

	Spectrum      Spectrum
	Target        int
	Clue          string
	GuessPosition int
	RoundScore    int

	CreatedAt  time.Time
	LastActive time.Time

	mu sync.RWMutex
}

// NewRoom creates a room in the AwaitingClue state with round parameters
// already drawn. The first player added becomes the clue-giver.
func NewRoom(id string, round Round) *Room {
	now := time.Now()
	return &Room{
		ID:         id,
		State:      StateAwaitingClue,
		Spectrum:   round.Spectrum,
		Target:     round.Target,
		CreatedAt:  now,
		LastActive: now,
	}
}

// AddPlayer appends a player to the room. Joining is legal in any state.
// The first player to join becomes the clue-giver.
func (r *Room) AddPlayer(player *Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Players = append(r.Players, player)
	if len(r.Players) == 1 {
		r.CurrentCluegiver = player.ID
	}
	r.LastActive = time.Now()
}

// RemovePlayer removes a player. If the departing player was the clue-giver
// and others remain, the role passes to the next player in join order,
// wrapping to the first. Returns whether a player was removed and whether
// the room is now empty (and so eligible for deletion).
func (r *Room) RemovePlayer(playerID string) (removed, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, len(r.Players) == 0
	}

	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	r.LastActive = time.Now()

	if len(r.Players) == 0 {
		r.CurrentCluegiver = ""
		return true, true
	}

	if r.CurrentCluegiver == playerID {
		// The player that followed the departed clue-giver now sits at idx.
		r.CurrentCluegiver = r.Players[idx%len(r.Players)].ID
	}

	return true, false
}

// SubmitClue records the clue. Only the clue-giver may submit, and only
// while the room is awaiting one; anything else is ignored. Reports whether
// the clue was accepted.
func (r *Room) SubmitClue(playerID, clue string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != StateAwaitingClue || playerID != r.CurrentCluegiver {
		return false
	}

	r.Clue = clue
	r.State = StateClueGiven
	r.LastActive = time.Now()
	return true
}

// RevealResult is the outcome of an accepted guess, captured while the room
// lock is held. Callers broadcast these values rather than re-reading the
// room, which another round may already have reset.
type RevealResult struct {
	GuessPosition  int
	TargetPosition int
	Score          int
}

// SubmitGuess records the round's single collective guess and reveals the
// target. Only a guesser may submit, only after a clue exists, and only the
// first guess of the round counts; anything else is ignored. The position is
// clamped to [0,100]. Reports whether the guess was accepted, and if so the
// revealed values of the round it concluded.
func (r *Room) SubmitGuess(playerID string, position int) (RevealResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != StateClueGiven || playerID == r.CurrentCluegiver {
		return RevealResult{}, false
	}

	if position < 0 {
		position = 0
	}
	if position > 100 {
		position = 100
	}

	r.GuessPosition = position
	r.RoundScore = Score(r.Target, position)
	r.State = StateRevealed
	r.LastActive = time.Now()

	return RevealResult{
		GuessPosition:  position,
		TargetPosition: r.Target,
		Score:          r.RoundScore,
	}, true
}

// StartNewRound resets the room for a fresh round: the clue-giver role
// passes to the next player in join order (wrapping to the first, or falling
// back to the first player if the previous clue-giver already left), and the
// clue, guess and reveal state are cleared. Tolerated from any state.
func (r *Room) StartNewRound(round Round) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Players) > 0 {
		next := 0
		for i, p := range r.Players {
			if p.ID == r.CurrentCluegiver {
				next = (i + 1) % len(r.Players)
				break
			}
		}
		r.CurrentCluegiver = r.Players[next].ID
	}

	r.Spectrum = round.Spectrum
	r.Target = round.Target
	r.Clue = ""
	r.GuessPosition = 0
	r.RoundScore = 0
	r.State = StateAwaitingClue
	r.LastActive = time.Now()
}

// GetPlayer retrieves a player by ID
func (r *Room) GetPlayer(playerID string) *Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// GetPlayers returns a copy of the player list in join order.
func (r *Room) GetPlayers() []*Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]*Player, len(r.Players))
	copy(players, r.Players)
	return players
}

// PlayerCount returns the number of players currently in the room.
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.Players)
}

// Cluegiver returns the id of the current clue-giver, or "" for an empty room.
func (r *Room) Cluegiver() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.CurrentCluegiver
}

// IdleSince reports the last time the room saw a state-changing action.
func (r *Room) IdleSince() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.LastActive
}

// Snapshot is the client-facing view of a room. The target position is
// withheld from guessers until the round is revealed; the clue, guess and
// score fields are null until set.
type Snapshot struct {
	ID               string    `json:"id"`
	State            RoomState `json:"state"`
	Players          []Player  `json:"players"`
	CurrentCluegiver string    `json:"currentCluegiver"`
	Spectrum         Spectrum  `json:"spectrum"`
	TargetPosition   *int      `json:"targetPosition"`
	Clue             *string   `json:"clue"`
	GuessPosition    *int      `json:"guessPosition"`
	Score            *int      `json:"score"`
	Revealed         bool      `json:"revealed"`
}

// SnapshotFor builds the view of the room for a single viewer. Only the
// clue-giver sees the target before the reveal; pass an empty viewer id for
// a spectator view.
func (r *Room) SnapshotFor(viewerID string) Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = *p
	}

	revealed := r.State == StateRevealed

	snap := Snapshot{
		ID:               r.ID,
		State:            r.State,
		Players:          players,
		CurrentCluegiver: r.CurrentCluegiver,
		Spectrum:         r.Spectrum,
		Revealed:         revealed,
	}

	if revealed || (viewerID != "" && viewerID == r.CurrentCluegiver) {
		target := r.Target
		snap.TargetPosition = &target
	}
	if r.State != StateAwaitingClue {
		clue := r.Clue
		snap.Clue = &clue
	}
	if revealed {
		guess := r.GuessPosition
		score := r.RoundScore
		snap.GuessPosition = &guess
		snap.Score = &score
	}

	return snap
}
