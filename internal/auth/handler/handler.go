// Package handler is the thin HTTP layer for authentication. It delegates to
// the auth service so transport concerns stay isolated.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"presales/internal/auth/models"
	"presales/internal/auth/service"
	"presales/internal/platform/middleware"
	"presales/internal/transport/httputil"
	"presales/pkg/apperrors"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	service  *service.Service
	validate *validator.Validate
	logger   *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:  svc,
		validate: validator.New(),
		logger:   logger,
	}
}

// MountPublic registers unauthenticated auth routes.
func (h *Handler) MountPublic(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

// MountProtected registers routes that require a valid bearer token.
func (h *Handler) MountProtected(r chi.Router) {
	r.Get("/auth/me", h.handleMe)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.CodeValidation, "email and password are required"))
		return
	}

	resp, err := h.service.Login(r.Context(), req, r.UserAgent())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		httputil.WriteError(w, apperrors.New(apperrors.CodeUnauthorized, "not authenticated"))
		return
	}
	httputil.WriteData(w, http.StatusOK, models.MeResponse{
		UserID:      principal.UserID,
		Email:       principal.Email,
		DisplayName: principal.DisplayName,
		Role:        principal.Role,
	})
}
