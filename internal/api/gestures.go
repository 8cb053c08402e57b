package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/handstream/handstream/internal/domain"
	"github.com/handstream/handstream/internal/store"
)

type GestureHandler struct {
	store *store.PostgresStore
}

func NewGestureHandler(s *store.PostgresStore) *GestureHandler {
	return &GestureHandler{store: s}
}

func (h *GestureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateGestureBindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Action == "" {
		respondError(w, http.StatusBadRequest, "action is required")
		return
	}

	existing, err := h.store.GetGestureBinding(r.Context(), req.Name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to check gesture binding")
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "gesture binding already exists")
		return
	}

	binding, err := h.store.CreateGestureBinding(r.Context(), req.Name, req.Action)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create gesture binding")
		return
	}

	respondJSON(w, http.StatusCreated, binding)
}

func (h *GestureHandler) List(w http.ResponseWriter, r *http.Request) {
	bindings, err := h.store.ListGestureBindings(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list gesture bindings")
		return
	}

	respondJSON(w, http.StatusOK, bindings)
}

func (h *GestureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid gesture id")
		return
	}

	deleted, err := h.store.DeleteGestureBinding(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete gesture binding")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "gesture binding not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *GestureHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	events, err := h.store.ListGestureEvents(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list gesture events")
		return
	}

	respondJSON(w, http.StatusOK, events)
}
