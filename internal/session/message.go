package session

import (
	"wavelink/internal/game"
)

// Inbound action types.
const (
	ActionCreateRoom  = "create_room"
	ActionJoinRoom    = "join_room"
	ActionSubmitClue  = "submit_clue"
	ActionSubmitGuess = "submit_guess"
	ActionNewRound    = "new_round"
)

// Outbound message types.
const (
	MsgRoomJoined     = "room_joined"
	MsgPlayerJoined   = "player_joined"
	MsgPlayerLeft     = "player_left"
	MsgClueSubmitted  = "clue_submitted"
	MsgGuessSubmitted = "guess_submitted"
	MsgNewRound       = "new_round"
	MsgError          = "error"
)

// ClientMessage is the single inbound frame shape; Type selects the action.
type ClientMessage struct {
	Type       string `json:"type"`
	RoomID     string `json:"roomId,omitempty"`
	PlayerName string `json:"playerName,omitempty"`
	Clue       string `json:"clue,omitempty"`
	Position   int    `json:"position,omitempty"`
}

// RoomJoinedMessage is sent to a single client after it creates or joins a
// room. The snapshot is tailored to the receiving player.
type RoomJoinedMessage struct {
	Type     string        `json:"type"`
	RoomID   string        `json:"roomId"`
	PlayerID string        `json:"playerId"`
	Room     game.Snapshot `json:"room"`
}

// MembershipMessage announces a membership change to the whole room.
type MembershipMessage struct {
	Type             string        `json:"type"` // "player_joined" or "player_left"
	Players          []game.Player `json:"players"`
	CurrentCluegiver string        `json:"currentCluegiver"`
}

// ClueMessage announces the submitted clue to the whole room.
type ClueMessage struct {
	Type string `json:"type"`
	Clue string `json:"clue"`
}

// GuessMessage announces the round's guess, the now-revealed target and the
// awarded score to the whole room.
type GuessMessage struct {
	Type           string `json:"type"`
	GuessPosition  int    `json:"guessPosition"`
	TargetPosition int    `json:"targetPosition"`
	Score          int    `json:"score"`
	Revealed       bool   `json:"revealed"`
}

// NewRoundMessage carries each player's view of the freshly started round.
type NewRoundMessage struct {
	Type string        `json:"type"`
	Room game.Snapshot `json:"room"`
}

// ErrorMessage is sent only to the client whose action failed; errors are
// never broadcast.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
