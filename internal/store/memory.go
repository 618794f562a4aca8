package store

import (
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"wavelink/internal/game"
)

var (
	// ErrRoomExists is returned when creating a room whose id is already live.
	ErrRoomExists = errors.New("room already exists")
	// ErrRoomNotFound is returned when looking up a room that is not live.
	ErrRoomNotFound = errors.New("room not found")
)

// MemoryStore is the registry of live rooms. Room ids are caller-supplied
// strings matched case-sensitively with no normalization; a room lives from
// Create until Remove.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*game.Room
}

// NewMemoryStore creates a new in-memory registry
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string]*game.Room),
	}
}

// Create registers a new room under id with the given round parameters.
// Exactly one of two concurrent Create calls for the same id wins; the
// other receives ErrRoomExists.
func (s *MemoryStore) Create(id string, round game.Round) (*game.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[id]; exists {
		return nil, ErrRoomExists
	}

	room := game.NewRoom(id, round)
	s.rooms[id] = room
	return room, nil
}

// Get retrieves a live room by id.
func (s *MemoryStore) Get(id string) (*game.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, exists := s.rooms[id]
	if !exists {
		return nil, ErrRoomNotFound
	}

	return room, nil
}

// Remove deletes a room from the registry. Invoked when a room's player
// count reaches zero and by the idle reaper.
func (s *MemoryStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, id)
}

// Count returns the number of live rooms.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rooms)
}

// ReapIdle removes rooms whose last activity is older than cutoff and
// returns their ids so the session layer can drop any lingering connections.
func (s *MemoryStore) ReapIdle(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reaped []string
	for id, room := range s.rooms {
		if room.IdleSince().Before(cutoff) {
			delete(s.rooms, id)
			reaped = append(reaped, id)
		}
	}
	return reaped
}

const roomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewRoomCode generates a fresh room code that does not collide with any
// live room. The code is only reserved once a room is created under it.
func (s *MemoryStore) NewRoomCode(length int) string {
	for {
		code := randomCode(length)

		s.mu.RLock()
		_, exists := s.rooms[code]
		s.mu.RUnlock()

		if !exists {
			return code
		}
	}
}

func randomCode(length int) string {
	b := make([]byte, length)
	rand.Read(b)

	for i := range b {
		b[i] = roomCodeChars[b[i]%byte(len(roomCodeChars))]
	}

	return string(b)
}
