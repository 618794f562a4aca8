package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	datastar "github.com/starfederation/datastar-go/datastar"

	"wavelink/internal/game"
)

// StreamRoom streams spectator updates for a room over SSE. Spectators get
// the neutral room view: the target position stays hidden until the reveal.
func (h *Handler) StreamRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "code")

	room, err := h.store.Get(roomID)
	if err != nil {
		log.Printf("SSE: stream requested for non-existent room %s", roomID)
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	log.Printf("SSE: spectator connected to room %s", roomID)

	sse := datastar.NewSSE(w, r)

	events := h.coordinator.Events().Subscribe(roomID)
	defer h.coordinator.Events().Unsubscribe(roomID, events)

	// Initial state so late spectators are in sync immediately.
	if err := sse.MarshalAndPatchSignals(roomSignals(room.SnapshotFor(""))); err != nil {
		log.Printf("SSE: failed to send initial state for room %s: %v", roomID, err)
		return
	}

	// Heartbeat doubles as a liveness check for the room itself.
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Printf("SSE: spectator left room %s", roomID)
			return
		case <-heartbeat.C:
			if _, err := h.store.Get(roomID); err != nil {
				log.Printf("SSE: room %s is gone, closing stream", roomID)
				return
			}
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := sse.MarshalAndPatchSignals(roomSignals(ev.Snapshot)); err != nil {
				log.Printf("SSE: failed to patch signals for room %s: %v", roomID, err)
				return
			}
		}
	}
}

// roomSignals flattens a snapshot into the signal map patched into
// spectator pages.
func roomSignals(snap game.Snapshot) map[string]any {
	names := make([]string, len(snap.Players))
	for i, p := range snap.Players {
		names[i] = p.Name
	}

	signals := map[string]any{
		"state":            string(snap.State),
		"players":          names,
		"currentCluegiver": snap.CurrentCluegiver,
		"spectrumLeft":     snap.Spectrum.Left,
		"spectrumRight":    snap.Spectrum.Right,
		"revealed":         snap.Revealed,
		"clue":             "",
		"guessPosition":    -1,
		"targetPosition":   -1,
		"score":            -1,
	}

	if snap.Clue != nil {
		signals["clue"] = *snap.Clue
	}
	if snap.GuessPosition != nil {
		signals["guessPosition"] = *snap.GuessPosition
	}
	if snap.TargetPosition != nil {
		signals["targetPosition"] = *snap.TargetPosition
	}
	if snap.Score != nil {
		signals["score"] = *snap.Score
	}

	return signals
}
