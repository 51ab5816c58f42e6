package session

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/conference-management/internal/core/common/pagination"
	"github.com/frahmantamala/conference-management/internal/transport"
	"github.com/frahmantamala/conference-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateSession(dto CreateSessionDTO) (*SessionResponse, error)
	GetSession(sessionID string) (*SessionDetail, error)
	UpdateSession(sessionID string, dto UpdateSessionDTO) (*SessionResponse, error)
	DeleteSession(sessionID string) error
	ListSessions(params pagination.Params) (*pagination.Response[SessionResponse], error)
	ListSpeakers(params pagination.Params) (*pagination.Response[SpeakerResponse], error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// ListSessions handles GET /session/
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())

	resp, err := h.Service.ListSessions(params)
	if err != nil {
		h.Logger.Error("ListSessions: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// CreateSession handles POST /session/
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var dto CreateSessionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateSession(dto)
	if err != nil {
		h.Logger.Error("CreateSession: service error", "error", err, "title", dto.Title)
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// GetSession handles GET /session/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	detail, err := h.Service.GetSession(sessionID)
	if err != nil {
		h.Logger.Warn("GetSession: service error", "error", err, "session_id", sessionID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

// UpdateSession handles PUT /session/{id}
func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var dto UpdateSessionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateSession(sessionID, dto)
	if err != nil {
		h.Logger.Error("UpdateSession: service error", "error", err, "session_id", sessionID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// DeleteSession handles DELETE /session/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	if err := h.Service.DeleteSession(sessionID); err != nil {
		h.Logger.Error("DeleteSession: service error", "error", err, "session_id", sessionID)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSpeakers handles GET /session/speakers
func (h *Handler) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())

	resp, err := h.Service.ListSpeakers(params)
	if err != nil {
		h.Logger.Error("ListSpeakers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
