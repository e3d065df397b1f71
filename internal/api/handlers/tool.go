package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"

	"github.com/matiasleandrokruk/nasamini/internal/domain/tool"
)

const maxToolBodyBytes = 1 << 20

type ToolHandler struct {
	registry *tool.ToolRegistry
}

func NewToolHandler(registry *tool.ToolRegistry) *ToolHandler {
	return &ToolHandler{registry: registry}
}

type toolResponse struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ListTools handles GET /api/v1/tools.
func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	defs := h.registry.Definitions()
	out := make([]toolResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, toolResponse{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: compactJSON(def.InputSchema),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out, "meta": map[string]int{"total": len(out)}})
}

// InvokeTool handles POST /api/v1/tools/{name}. The body is the tool's params object;
// an empty body means no params. Tool failures are still 200 with ok=false.
func (h *ToolHandler) InvokeTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxToolBodyBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) > maxToolBodyBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	if len(body) > 0 && !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	envelope, err := h.registry.Invoke(r.Context(), name, body)
	if errors.Is(err, tool.ErrToolExecutorNotRegistered) {
		writeError(w, http.StatusNotFound, "tool not found: "+name)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to invoke tool")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(envelope)
}
