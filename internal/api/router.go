package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates the chi router for HTTP mode. The health probes
// stay open; the MCP endpoint is guarded by Bearer auth when
// authEnabled is set.
func NewRouter(mcpHandler http.Handler, authEnabled bool, token string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", handleHealth)
	r.Get("/health/ready", handleHealth)

	// Streamable HTTP transport: POST for requests, GET for the
	// listening stream, DELETE for session teardown.
	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(authEnabled, token))
		pr.Handle("/mcp", mcpHandler)
	})

	return r
}

type statusResponse struct {
	Status string `json:"status"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
