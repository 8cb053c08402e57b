package api

import (
	"encoding/json"
	"net/http"

	"github.com/handstream/handstream/internal/domain"
	"github.com/handstream/handstream/internal/engine"
	"github.com/handstream/handstream/internal/store"
)

type FrameHandler struct {
	cache       *store.FrameCache
	broadcaster *engine.Broadcaster
}

func NewFrameHandler(cache *store.FrameCache, broadcaster *engine.Broadcaster) *FrameHandler {
	return &FrameHandler{cache: cache, broadcaster: broadcaster}
}

// Ingest accepts one tracking frame from the tracker process and broadcasts
// it to connected viewers.
func (h *FrameHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var frame domain.Frame
	if err := json.NewDecoder(r.Body).Decode(&frame); err != nil {
		respondError(w, http.StatusBadRequest, "invalid frame body")
		return
	}

	h.broadcaster.Publish(r.Context(), frame)

	respondJSON(w, http.StatusAccepted, map[string]int{"hand_count": frame.HandCount()})
}

// Latest returns the most recently ingested frame, or 404 when the cache is
// cold.
func (h *FrameHandler) Latest(w http.ResponseWriter, r *http.Request) {
	frame, err := h.cache.Latest(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read latest frame")
		return
	}
	if frame == nil {
		respondError(w, http.StatusNotFound, "no frame ingested yet")
		return
	}

	respondJSON(w, http.StatusOK, frame)
}
