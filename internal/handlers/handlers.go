package handlers

import (
	"encoding/json"
	"net/http"

	"wavelink/internal/config"
	"wavelink/internal/session"
	"wavelink/internal/store"
)

// Handler holds dependencies for the HTTP surface
type Handler struct {
	store       *store.MemoryStore
	coordinator *session.Coordinator
	config      *config.ServerConfig
}

// New creates a new handler
func New(s *store.MemoryStore, co *session.Coordinator, cfg *config.ServerConfig) *Handler {
	return &Handler{
		store:       s,
		coordinator: co,
		config:      cfg,
	}
}

// ServeWS hands the connection to the session coordinator; all game actions
// travel over this websocket.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	h.coordinator.ServeWS(w, r)
}

// NewRoomCode responds with a fresh room code that no live room is using.
// The code is not reserved: the room comes into being when its creator
// sends create_room over the websocket, so an empty room never persists.
func (h *Handler) NewRoomCode(w http.ResponseWriter, r *http.Request) {
	code := h.store.NewRoomCode(h.config.Server.RoomCodeLength)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(map[string]string{"roomId": code})
}

// HealthLive reports process liveness.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HealthReady reports whether the server can accept game traffic.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || h.coordinator == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
