package api

import (
	"net/http"

	"github.com/handstream/handstream/internal/stream"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Viewers int    `json:"viewers"`
}

// HealthHandler returns the health check handler.
func HealthHandler(hub *stream.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{
			Status:  "healthy",
			Version: "1.0.0",
			Viewers: hub.ClientCount(),
		})
	}
}
