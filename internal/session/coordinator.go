package session

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"wavelink/internal/game"
	"wavelink/internal/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Coordinator translates inbound client actions into registry and room
// operations and fans the results back out to every connection in the
// affected room. It is the only component that touches the transport.
//
// A connection belongs to at most one room. Registry errors go back to the
// originating client only; actions that are illegal for the caller's role or
// the room's state are dropped without a reply.
type Coordinator struct {
	store  *store.MemoryStore
	gen    *game.Generator
	events *EventBus

	codeLength int

	mu      sync.RWMutex
	rooms   map[string]map[*Client]bool
	members map[*Client]string
}

// NewCoordinator creates a coordinator over the given registry and round
// generator. codeLength sizes generated room codes for create requests that
// do not supply an id.
func NewCoordinator(s *store.MemoryStore, gen *game.Generator, codeLength int) *Coordinator {
	return &Coordinator{
		store:      s,
		gen:        gen,
		events:     NewEventBus(),
		codeLength: codeLength,
		rooms:      make(map[string]map[*Client]bool),
		members:    make(map[*Client]string),
	}
}

// Events exposes the room event stream for passive observers.
func (co *Coordinator) Events() *EventBus {
	return co.events
}

// ServeWS upgrades the request and runs the connection's read loop.
func (co *Coordinator) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("SESSION: upgrade failed: %v", err)
		return
	}

	client := newClient(conn)
	log.Printf("SESSION: client %s connected from %s", client.id, r.RemoteAddr)

	go client.writePump()
	client.readPump(co)
}

// Dispatch routes one inbound action. Unknown action types are ignored.
func (co *Coordinator) Dispatch(c *Client, msg ClientMessage) {
	switch msg.Type {
	case ActionCreateRoom:
		co.handleCreateRoom(c, msg)
	case ActionJoinRoom:
		co.handleJoinRoom(c, msg)
	case ActionSubmitClue:
		co.handleSubmitClue(c, msg)
	case ActionSubmitGuess:
		co.handleSubmitGuess(c, msg)
	case ActionNewRound:
		co.handleNewRound(c)
	default:
		// ignore unknown types
	}
}

func (co *Coordinator) handleCreateRoom(c *Client, msg ClientMessage) {
	if co.roomOf(c) != "" {
		return
	}

	roomID := msg.RoomID
	if roomID == "" {
		roomID = co.store.NewRoomCode(co.codeLength)
	}

	room, err := co.store.Create(roomID, co.gen.NewRound())
	if err != nil {
		if errors.Is(err, store.ErrRoomExists) {
			c.enqueue(ErrorMessage{Type: MsgError, Message: "Room already exists"})
		}
		return
	}

	room.AddPlayer(game.NewPlayer(c.id, msg.PlayerName))
	co.register(c, roomID)

	c.enqueue(RoomJoinedMessage{
		Type:     MsgRoomJoined,
		RoomID:   roomID,
		PlayerID: c.id,
		Room:     room.SnapshotFor(c.id),
	})
	co.publish(room)

	log.Printf("SESSION: room %s created by %q", roomID, msg.PlayerName)
}

func (co *Coordinator) handleJoinRoom(c *Client, msg ClientMessage) {
	if co.roomOf(c) != "" {
		return
	}

	room, err := co.store.Get(msg.RoomID)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			c.enqueue(ErrorMessage{Type: MsgError, Message: "Room not found"})
		}
		return
	}

	room.AddPlayer(game.NewPlayer(c.id, msg.PlayerName))
	co.register(c, msg.RoomID)

	// The last member may have disconnected between Get and AddPlayer,
	// tearing the room down. Back the join out rather than leave the
	// client attached to a room the registry no longer knows.
	if _, err := co.store.Get(msg.RoomID); err != nil {
		co.unregister(c)
		room.RemovePlayer(c.id)
		c.enqueue(ErrorMessage{Type: MsgError, Message: "Room not found"})
		return
	}

	c.enqueue(RoomJoinedMessage{
		Type:     MsgRoomJoined,
		RoomID:   msg.RoomID,
		PlayerID: c.id,
		Room:     room.SnapshotFor(c.id),
	})
	co.broadcastMembership(msg.RoomID, room, MsgPlayerJoined)
	co.publish(room)

	log.Printf("SESSION: %q joined room %s", msg.PlayerName, msg.RoomID)
}

func (co *Coordinator) handleSubmitClue(c *Client, msg ClientMessage) {
	room := co.roomFor(c)
	if room == nil {
		return
	}

	if !room.SubmitClue(c.id, msg.Clue) {
		return
	}

	co.broadcast(room.ID, ClueMessage{Type: MsgClueSubmitted, Clue: msg.Clue})
	co.publish(room)

	log.Printf("SESSION: clue submitted in room %s", room.ID)
}

func (co *Coordinator) handleSubmitGuess(c *Client, msg ClientMessage) {
	room := co.roomFor(c)
	if room == nil {
		return
	}

	// Broadcast the values captured under the room lock: a racing new_round
	// may have reset the room before we get here, so the snapshot cannot be
	// trusted to still carry the reveal.
	result, ok := room.SubmitGuess(c.id, msg.Position)
	if !ok {
		return
	}

	co.broadcast(room.ID, GuessMessage{
		Type:           MsgGuessSubmitted,
		GuessPosition:  result.GuessPosition,
		TargetPosition: result.TargetPosition,
		Score:          result.Score,
		Revealed:       true,
	})
	co.publish(room)

	log.Printf("SESSION: guess submitted in room %s", room.ID)
}

func (co *Coordinator) handleNewRound(c *Client) {
	room := co.roomFor(c)
	if room == nil {
		return
	}

	room.StartNewRound(co.gen.NewRound())

	// Each player gets their own view: only the new clue-giver may see the
	// fresh target.
	co.mu.RLock()
	for client := range co.rooms[room.ID] {
		client.enqueue(NewRoundMessage{Type: MsgNewRound, Room: room.SnapshotFor(client.id)})
	}
	co.mu.RUnlock()
	co.publish(room)

	log.Printf("SESSION: new round started in room %s", room.ID)
}

// Disconnect removes the client from its room, applying leave semantics
// before any further broadcast: the clue-giver role is reassigned if needed
// and the room is torn down the moment it empties.
func (co *Coordinator) Disconnect(c *Client) {
	co.mu.Lock()
	roomID, wasMember := co.members[c]
	delete(co.members, c)
	if wasMember {
		delete(co.rooms[roomID], c)
		if len(co.rooms[roomID]) == 0 {
			delete(co.rooms, roomID)
		}
	}
	co.mu.Unlock()

	c.close()

	if !wasMember {
		return
	}

	room, err := co.store.Get(roomID)
	if err != nil {
		return
	}

	removed, empty := room.RemovePlayer(c.id)
	if empty {
		co.store.Remove(roomID)
		log.Printf("SESSION: room %s deleted (empty)", roomID)
		return
	}
	if removed {
		co.broadcastMembership(roomID, room, MsgPlayerLeft)
		co.publish(room)
		log.Printf("SESSION: client %s left room %s", c.id, roomID)
	}
}

// ReapLoop periodically tears down rooms idle longer than timeout, closing
// any connections still attached to them.
func (co *Coordinator) ReapLoop(ctx context.Context, timeout time.Duration) {
	ticker := time.NewTicker(timeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, roomID := range co.store.ReapIdle(time.Now().Add(-timeout)) {
				co.mu.Lock()
				clients := co.rooms[roomID]
				delete(co.rooms, roomID)
				for client := range clients {
					delete(co.members, client)
				}
				co.mu.Unlock()

				for client := range clients {
					client.close()
				}
				log.Printf("SESSION: room %s reaped after %s idle", roomID, timeout)
			}
		}
	}
}

func (co *Coordinator) register(c *Client, roomID string) {
	co.mu.Lock()
	defer co.mu.Unlock()

	if co.rooms[roomID] == nil {
		co.rooms[roomID] = make(map[*Client]bool)
	}
	co.rooms[roomID][c] = true
	co.members[c] = roomID
}

// unregister drops the client's membership without touching the room or the
// registry.
func (co *Coordinator) unregister(c *Client) {
	co.mu.Lock()
	defer co.mu.Unlock()

	roomID, ok := co.members[c]
	if !ok {
		return
	}
	delete(co.members, c)
	delete(co.rooms[roomID], c)
	if len(co.rooms[roomID]) == 0 {
		delete(co.rooms, roomID)
	}
}

func (co *Coordinator) roomOf(c *Client) string {
	co.mu.RLock()
	defer co.mu.RUnlock()

	return co.members[c]
}

// roomFor resolves the caller's room, or nil if the client is not in one or
// the room has already been torn down.
func (co *Coordinator) roomFor(c *Client) *game.Room {
	roomID := co.roomOf(c)
	if roomID == "" {
		return nil
	}

	room, err := co.store.Get(roomID)
	if err != nil {
		return nil
	}
	return room
}

// broadcast sends the same message to every connection in the room.
func (co *Coordinator) broadcast(roomID string, msg any) {
	co.mu.RLock()
	defer co.mu.RUnlock()

	for client := range co.rooms[roomID] {
		client.enqueue(msg)
	}
}

func (co *Coordinator) broadcastMembership(roomID string, room *game.Room, msgType string) {
	players := room.GetPlayers()
	list := make([]game.Player, len(players))
	for i, p := range players {
		list[i] = *p
	}

	co.broadcast(roomID, MembershipMessage{
		Type:             msgType,
		Players:          list,
		CurrentCluegiver: room.Cluegiver(),
	})
}

func (co *Coordinator) publish(room *game.Room) {
	co.events.Publish(Event{
		RoomID:   room.ID,
		Snapshot: room.SnapshotFor(""),
	})
}
