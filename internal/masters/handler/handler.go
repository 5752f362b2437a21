// Package handler is the HTTP layer for master-list administration. Reads
// are open to any authenticated user; mutations require the admin role.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"presales/internal/masters/models"
	"presales/internal/masters/service"
	"presales/internal/platform/middleware"
	"presales/internal/transport/httputil"
	"presales/pkg/apperrors"
)

// Handler wires HTTP endpoints for master-list CRUD.
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

// MountRead registers read-only routes for authenticated users.
func (h *Handler) MountRead(r chi.Router) {
	r.Get("/masters/{category}", h.handleList)
	r.Get("/masters/{category}/{id}", h.handleGet)
}

// MountAdmin registers mutation routes. Callers must gate this router group
// with the admin-role middleware.
func (h *Handler) MountAdmin(r chi.Router) {
	r.Post("/masters/{category}", h.handleCreate)
	r.Put("/masters/{category}/{id}", h.handleUpdate)
	r.Delete("/masters/{category}/{id}", h.handleDelete)
}

func (h *Handler) category(r *http.Request) (models.Category, error) {
	return models.ParseCategory(chi.URLParam(r, "category"))
}

func itemID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperrors.New(apperrors.CodeBadRequest, "invalid item id")
	}
	return id, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	category, err := h.category(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", service.DefaultPageSize)

	result, err := h.service.List(r.Context(), category, page, size)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	content := make([]models.ItemDTO, 0, len(result.Items))
	for i := range result.Items {
		content = append(content, result.Items[i].DTO())
	}
	httputil.WriteData(w, http.StatusOK, httputil.Paged[models.ItemDTO]{
		Content:       content,
		Page:          result.Number,
		Size:          result.Size,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		Last:          result.Last,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	category, err := h.category(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := itemID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	item, err := h.service.Get(r.Context(), category, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, item.DTO())
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	category, err := h.category(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req models.CreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.CodeValidation, "name is required"))
		return
	}

	item, err := h.service.Create(r.Context(), category, req, actorEmail(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusCreated, item.DTO(), "Created successfully")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	category, err := h.category(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := itemID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req models.UpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.CodeValidation, "name is required"))
		return
	}

	item, err := h.service.Update(r.Context(), category, id, req, actorEmail(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, item.DTO(), "Updated successfully")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	category, err := h.category(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := itemID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), category, id, actorEmail(r)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, nil, "Deleted successfully")
}

func actorEmail(r *http.Request) string {
	if principal, ok := middleware.GetPrincipal(r.Context()); ok {
		return principal.Email
	}
	return ""
}
