package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/handstream/handstream/internal/engine"
	"github.com/handstream/handstream/internal/store"
	"github.com/handstream/handstream/internal/stream"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(pgStore *store.PostgresStore, cache *store.FrameCache, broadcaster *engine.Broadcaster, hub *stream.Hub) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// CORS so browser-based viewers can poll the API
	r.Use(corsMiddleware)

	// Handlers
	frameHandler := NewFrameHandler(cache, broadcaster)
	gestureHandler := NewGestureHandler(pgStore)

	// Index banner, kept for tooling that probes the server root
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("WebSocket Streaming Server Running!"))
	})

	// WebSocket endpoint the viewers subscribe to
	r.Get("/ws", hub.HandleWebSocket)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", HealthHandler(hub))

		r.Route("/frames", func(r chi.Router) {
			r.Post("/", frameHandler.Ingest)
			r.Get("/latest", frameHandler.Latest)
		})

		r.Route("/gestures", func(r chi.Router) {
			r.Post("/", gestureHandler.Create)
			r.Get("/", gestureHandler.List)
			r.Delete("/{id}", gestureHandler.Delete)
		})

		r.Get("/gesture-events", gestureHandler.ListEvents)
	})

	return r
}

// corsMiddleware mirrors the permissive CORS the original tracking server ran
// with.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
