// Package api wires the HTTP surface: health, the MCP endpoint and a small REST
// facade over the tool registry.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matiasleandrokruk/nasamini/internal/api/handlers"
	apmiddleware "github.com/matiasleandrokruk/nasamini/internal/api/middleware"
	tooldomain "github.com/matiasleandrokruk/nasamini/internal/domain/tool"
)

// MCPPath is where the streamable MCP handler is mounted.
const MCPPath = "/mcp"

// NewRouter creates the chi router. mcpHandler may be nil, in which case /mcp is not
// mounted.
func NewRouter(registry *tooldomain.ToolRegistry, mcpHandler http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apmiddleware.RequestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	if mcpHandler != nil {
		r.Handle(MCPPath, mcpHandler)
	}

	toolHandler := handlers.NewToolHandler(registry)
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/tools", func(r chi.Router) {
			r.Get("/", toolHandler.ListTools)          // GET /api/v1/tools
			r.Post("/{name}", toolHandler.InvokeTool) // POST /api/v1/tools/{name}
		})
	})

	return r
}
