package game

import (
	"time"
)

// Player is one connection's presence in a room. ID is the opaque connection
// identity and lives only as long as the connection; rejoining yields a
// fresh one.
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"-"`
}

// NewPlayer creates a new player
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		JoinedAt: time.Now(),
	}
}
