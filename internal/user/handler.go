package user

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
	CreateUser(dto CreateUserDTO) (*UserResponse, error)
	RetrieveUser(userID string) (*UserDetail, error)
	UpdateUser(userID string, dto UpdateUserDTO) (*UserResponse, error)
	DeleteUser(userID string) error
	ListUsers(params pagination.Params) (*pagination.Response[UserResponse], error)
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

// ListUsers handles GET /user/
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())

	resp, err := h.Service.ListUsers(params)
	if err != nil {
		h.Logger.Error("ListUsers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// CreateUser handles POST /user/
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateUser(dto)
	if err != nil {
		h.Logger.Error("CreateUser: service error", "error", err, "email", dto.Email)
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// RetrieveUser handles GET /user/{id}
func (h *Handler) RetrieveUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	detail, err := h.Service.RetrieveUser(userID)
	if err != nil {
		h.Logger.Warn("RetrieveUser: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

// UpdateUser handles PUT /user/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateUser(userID, dto)
	if err != nil {
		h.Logger.Error("UpdateUser: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// DeleteUser handles DELETE /user/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := h.Service.DeleteUser(userID); err != nil {
		h.Logger.Error("DeleteUser: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
