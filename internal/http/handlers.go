package http

import (
	"encoding/json"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"bracket-service/internal/app/brackets"
	domainbracket "bracket-service/internal/domain/bracket"
)

type nowFunc func() time.Time

// ReadyFunc reports whether the service is ready to serve brackets.
type ReadyFunc func() bool

// Handler wires HTTP routes to the bracket read service.
type Handler struct {
	svc    *brackets.Service
	ready  ReadyFunc
	logger *slog.Logger
	now    nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *brackets.Service, ready ReadyFunc, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		ready:  ready,
		logger: logger,
		now:    time.Now,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the pollers have warmed at least one snapshot and
// are not failing repeatedly.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.ready != nil && !h.ready() {
		h.writeJSON(w, nethttp.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"})
}

// bracketsResponse is the list payload for every published view.
type bracketsResponse struct {
	Brackets []*domainbracket.Snapshot `json:"brackets"`
}

// Brackets returns the latest snapshot for every view.
func (h *Handler) Brackets(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, bracketsResponse{Brackets: h.svc.Snapshots()})
}

// BracketByView returns a single view's snapshot.
func (h *Handler) BracketByView(w nethttp.ResponseWriter, r *nethttp.Request) {
	// Expect path: /brackets/{view}
	view := strings.TrimPrefix(r.URL.Path, "/brackets/")
	if view == "" || strings.Contains(view, "/") {
		h.writeError(w, nethttp.StatusBadRequest, "missing bracket view")
		return
	}

	snap, ok := h.svc.SnapshotByView(view)
	if !ok {
		h.writeError(w, nethttp.StatusNotFound, "bracket not found")
		return
	}
	h.writeJSON(w, nethttp.StatusOK, snap)
}

func (h *Handler) writeJSON(w nethttp.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w nethttp.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
