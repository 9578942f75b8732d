package playback

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"csai-playback/internal/platform/metrics"
	"csai-playback/internal/pod"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the playback host bridge over HTTP using go-chi. The TV
// host posts player/remote/ad-surface events and polls back the context
// snapshot and pending player commands.
type Handler struct {
	svc     *Service
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewHandler returns a Handler over the given Service, Logger, and optional
// Metrics. Metrics may be nil to disable metric recording (e.g. in tests).
func NewHandler(svc *Service, log *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, log: log, metrics: m}
}

// Routes mounts all playback endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/contents", h.ListContents)
	r.Post("/sessions", h.CreateSession)
	r.Route("/sessions/{session_id}", func(r chi.Router) {
		r.Get("/context", h.GetContext)
		r.Get("/commands", h.GetCommands)
		r.Post("/player-events", h.PostPlayerEvent)
		r.Post("/remote-events", h.PostRemoteEvent)
		r.Post("/ad-events", h.PostAdEvent)
		r.Post("/end", h.EndSession)
	})
}

// ListContents handles GET /contents.
func (h *Handler) ListContents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Catalog().Contents)
}

// CreateSession handles POST /sessions.
// Body: { "contentId": "csai-example-1" }.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ContentID string `json:"contentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ContentID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	sess, err := h.svc.CreateSession(body.ContentID)
	if err != nil {
		if errors.Is(err, ErrUnknownContent) {
			h.log.Info("session rejected unknown content", slog.String("content_id", body.ContentID))
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.log.Error("create session failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.log.Info("session created",
		slog.String("session_id", sess.ID()),
		slog.String("content_id", body.ContentID))

	writeJSON(w, http.StatusCreated, map[string]any{
		"sessionId": sess.ID(),
		"context":   sess.Context(),
	})
}

// GetContext handles GET /sessions/{session_id}/context.
func (h *Handler) GetContext(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.svc.Context(chi.URLParam(r, "session_id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ctx)
}

// GetCommands handles GET /sessions/{session_id}/commands. Commands are
// drained: each is delivered to the host exactly once.
func (h *Handler) GetCommands(w http.ResponseWriter, r *http.Request) {
	cmds, ok := h.svc.Commands(chi.URLParam(r, "session_id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if cmds == nil {
		cmds = []Command{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"commands": cmds})
}

// PostPlayerEvent handles POST /sessions/{session_id}/player-events.
// Body: { "type": "timeupdate", "time": 93.2 }.
func (h *Handler) PostPlayerEvent(w http.ResponseWriter, r *http.Request) {
	var ev PlayerEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil || ev.Type == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.svc.PlayerEvent(chi.URLParam(r, "session_id"), ev); err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostRemoteEvent handles POST /sessions/{session_id}/remote-events.
// Body: { "action": "skip_forward" }.
func (h *Handler) PostRemoteEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Action == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.svc.RemoteEvent(chi.URLParam(r, "session_id"), body.Action); err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostAdEvent handles POST /sessions/{session_id}/ad-events.
// Body: { "event": "adFreePod" }.
func (h *Handler) PostAdEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Event pod.SurfaceEvent `json:"event"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Event == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.svc.SurfaceEvent(chi.URLParam(r, "session_id"), body.Event); err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EndSession handles POST /sessions/{session_id}/end.
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")
	if err := h.svc.EndSession(id); err != nil {
		h.log.Error("end session failed", slog.String("session_id", id), slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.log.Info("session ended", slog.String("session_id", id))
	w.WriteHeader(http.StatusOK)
	if h.metrics != nil {
		h.metrics.IncSessionsEnded()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
