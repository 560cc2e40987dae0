package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/codex-k8s/devterm-mcp-server/internal/protocol"
	"github.com/codex-k8s/devterm-mcp-server/internal/runtime"
	"github.com/codex-k8s/devterm-mcp-server/internal/tools"
)

// Prefix is where the router expects to be mounted.
const Prefix = "/api/"

const maxBodyBytes = 1 << 20

// ExecuteRequest is the body of an execute call.
type ExecuteRequest struct {
	// Input is the raw tool input.
	Input string `json:"input"`
	// CorrelationID links related requests.
	CorrelationID string `json:"correlation_id,omitempty"`
}

type handler struct {
	service *runtime.Service
	logger  *slog.Logger
}

// NewRouter returns the REST API router.
func NewRouter(service *runtime.Service, logger *slog.Logger) http.Handler {
	h := &handler{service: service, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1/tools", func(r chi.Router) {
		r.Get("/", h.listTools)
		r.Get("/{id}", h.getTool)
		r.Post("/{id}/execute", h.execute)
	})
	return r
}

func (h *handler) listTools(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"data": runtime.Infos(h.service.Catalog.List())})
}

func (h *handler) getTool(w http.ResponseWriter, r *http.Request) {
	desc, err := h.service.Catalog.Get(tools.ID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, runtime.Info(desc))
}

func (h *handler) execute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.service.Catalog.Get(tools.ID(id)); err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var req ExecuteRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.CorrelationID == "" {
		req.CorrelationID = middleware.GetReqID(r.Context())
	}

	resp := h.service.Call(r.Context(), runtime.Call{
		Tool:          id,
		Input:         req.Input,
		CorrelationID: req.CorrelationID,
	})
	status := http.StatusOK
	if resp.Status == protocol.StatusDenied {
		status = http.StatusTooManyRequests
	}
	h.writeJSON(w, status, resp)
}

func (h *handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && h.logger != nil {
		h.logger.Warn("write response failed", "error", err)
	}
}
